// Package roc builds receiver operating characteristic curves for a
// confidence score and selects the operating threshold that maximises
// Youden's J statistic (TPR - FPR).
package roc

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
)

// ErrDegenerateInput is matched by errors.Is for every *DegenerateInputError.
var ErrDegenerateInput = errors.New("roc: degenerate input")

// ErrInvalidScore is returned when a sample carries a NaN score.
var ErrInvalidScore = errors.New("roc: invalid score")

// DegenerateInputError reports a sample set that lacks either a positive or
// a negative case, which leaves one of the rates undefined.
type DegenerateInputError struct {
	Positives int
	Negatives int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("roc: need at least one positive and one negative sample, got %d positive and %d negative",
		e.Positives, e.Negatives)
}

func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}

// Sample is a single scored OCR outcome.
type Sample struct {
	// Correct is the ground truth: whether the OCR output was right.
	Correct bool `json:"is_correct"`
	// Score is the system's confidence for the output.
	Score float64 `json:"score"`
}

// Point is one operating point on the curve. A sample is accepted at this
// point when its score is strictly greater than Threshold.
type Point struct {
	Threshold float64 `json:"threshold"`
	FPR       float64 `json:"fpr"`
	TPR       float64 `json:"tpr"`
}

// Result is the outcome of Compute. It is not modified after creation.
type Result struct {
	Curve            []Point `json:"curve"`
	AUC              float64 `json:"auc"`
	OptimalThreshold float64 `json:"optimal_threshold"`
	OptimalIndex     int     `json:"optimal_index"`
	Positives        int     `json:"positives"`
	Negatives        int     `json:"negatives"`
}

// counts is a curve point in raw true/false positive counts. Keeping the
// integer form lets the area and the J comparison stay exact.
type counts struct {
	tp, fp int64
}

// Compute builds the ROC curve for samples, integrates its area with the
// trapezoidal rule and picks the point maximising TPR - FPR.
//
// Samples are ordered by descending score with a stable sort, so equal
// scores keep their input order. Every run of equal scores yields a single
// point; a tied group of mixed labels never produces intermediate points.
// Among points with equal J the one with the smaller FPR wins.
//
// Compute does not modify samples. It returns a *DegenerateInputError when
// the set has no positive or no negative sample.
func Compute(samples []Sample) (*Result, error) {
	var pos, neg int
	for i, s := range samples {
		if math.IsNaN(s.Score) {
			return nil, fmt.Errorf("%w: sample %d has a NaN score", ErrInvalidScore, i)
		}
		if s.Correct {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, &DegenerateInputError{Positives: pos, Negatives: neg}
	}

	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b Sample) int {
		return cmp.Compare(b.Score, a.Score)
	})

	curve := []Point{{Threshold: math.Inf(1)}}
	raw := []counts{{}}

	var c counts
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].Score == sorted[i].Score {
			if sorted[j].Correct {
				c.tp++
			} else {
				c.fp++
			}
			j++
		}

		threshold := math.Inf(-1)
		if j < len(sorted) {
			threshold = sorted[j].Score
		}
		curve = append(curve, Point{
			Threshold: threshold,
			FPR:       float64(c.fp) / float64(neg),
			TPR:       float64(c.tp) / float64(pos),
		})
		raw = append(raw, c)
		i = j
	}
	// The last group admits every sample, so the curve always closes at (1, 1)
	// with a -Inf threshold.

	best := optimalIndex(raw, int64(pos), int64(neg))

	res := &Result{
		Curve:            curve,
		AUC:              area(raw, int64(pos), int64(neg)),
		OptimalThreshold: curve[best].Threshold,
		OptimalIndex:     best,
		Positives:        pos,
		Negatives:        neg,
	}

	slog.Debug("Computed ROC curve",
		"samples", len(samples),
		"positives", pos,
		"negatives", neg,
		"points", len(curve),
		"auc", res.AUC,
		"optimalThreshold", res.OptimalThreshold)

	return res, nil
}

// area integrates the curve with the trapezoidal rule. Each trapezoid is
// (fp1-fp0)/N * (tp0+tp1)/(2P); summing numerators first makes a perfectly
// separated set come out at exactly 1.
func area(raw []counts, pos, neg int64) float64 {
	var sum int64
	for i := 1; i < len(raw); i++ {
		sum += (raw[i].fp - raw[i-1].fp) * (raw[i].tp + raw[i-1].tp)
	}
	return float64(sum) / float64(2*pos*neg)
}

// optimalIndex returns the index maximising TPR - FPR. J is compared as
// tp*N - fp*P to avoid rounding ties apart.
func optimalIndex(raw []counts, pos, neg int64) int {
	best := 0
	bestJ := raw[0].tp*neg - raw[0].fp*pos
	for i := 1; i < len(raw); i++ {
		j := raw[i].tp*neg - raw[i].fp*pos
		if j > bestJ || (j == bestJ && raw[i].fp < raw[best].fp) {
			best, bestJ = i, j
		}
	}
	return best
}
