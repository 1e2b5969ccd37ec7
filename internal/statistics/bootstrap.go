package statistics

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/spboyer/ocreval/internal/roc"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval computation.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Estimate        float64 `json:"estimate"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
	// Skipped counts resamples that drew only one class and had no defined AUC.
	Skipped int `json:"skipped,omitempty"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 2000

// DefaultConfidenceLevel is used when Options.ConfidenceLevel is zero.
const DefaultConfidenceLevel = 0.95

// Options controls BootstrapAUC.
type Options struct {
	// ConfidenceLevel should be in (0, 1), e.g. 0.95.
	ConfidenceLevel float64
	// Iterations defaults to DefaultBootstrapIterations when <= 0.
	Iterations int
	// Seed makes the resampling reproducible. A negative seed uses a
	// non-deterministic source.
	Seed int64
}

// BootstrapAUC computes a percentile bootstrap confidence interval for the
// area under the ROC curve of samples. Resamples that happen to contain a
// single class are skipped. The error wraps roc.ErrDegenerateInput when the
// full sample set is itself degenerate.
func BootstrapAUC(samples []roc.Sample, opts Options) (ConfidenceInterval, error) {
	level := opts.ConfidenceLevel
	if level == 0 {
		level = DefaultConfidenceLevel
	}
	if level <= 0 || level >= 1 {
		return ConfidenceInterval{}, fmt.Errorf("confidence level must be in (0, 1), got %v", level)
	}
	iters := opts.Iterations
	if iters <= 0 {
		iters = DefaultBootstrapIterations
	}

	base, err := roc.Compute(samples)
	if err != nil {
		return ConfidenceInterval{}, err
	}

	var rng *rand.Rand
	if opts.Seed >= 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	n := len(samples)
	aucs := make([]float64, 0, iters)
	resample := make([]roc.Sample, n)
	skipped := 0
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			resample[j] = samples[rng.Intn(n)]
		}
		res, err := roc.Compute(resample)
		if err != nil {
			if errors.Is(err, roc.ErrDegenerateInput) {
				skipped++
				continue
			}
			return ConfidenceInterval{}, err
		}
		aucs = append(aucs, res.AUC)
	}

	slog.Debug("Bootstrapped AUC", "iterations", iters, "skipped", skipped, "auc", base.AUC)

	if len(aucs) == 0 {
		return ConfidenceInterval{
			Lower:           base.AUC,
			Upper:           base.AUC,
			Estimate:        base.AUC,
			ConfidenceLevel: level,
			Skipped:         skipped,
		}, nil
	}

	lo, hi := percentileBounds(aucs, level)
	return ConfidenceInterval{
		Lower:           lo,
		Upper:           hi,
		Estimate:        base.AUC,
		ConfidenceLevel: level,
		NumBootstraps:   len(aucs),
		Skipped:         skipped,
	}, nil
}

// percentileBounds sorts values in place and returns the two-sided
// percentile bounds for the given confidence level.
func percentileBounds(values []float64, level float64) (float64, float64) {
	sort.Float64s(values)

	k := len(values)
	alpha := 1.0 - level
	loIdx := int(math.Floor(alpha / 2.0 * float64(k)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(k)))
	if hiIdx >= k {
		hiIdx = k - 1
	}
	return values[loIdx], values[hiIdx]
}

// BetterThanChance returns true if the whole interval lies above 0.5, the
// area of a classifier that ignores the score.
func BetterThanChance(ci ConfidenceInterval) bool {
	return ci.Lower > 0.5
}
