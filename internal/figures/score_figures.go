package figures

import (
	"fmt"
	"io"
	"math"

	"github.com/spboyer/ocreval/internal/roc"
)

// DefaultBins is the histogram resolution when a figure sets none.
const DefaultBins = 20

// binned holds per-bin class counts over the score range.
type binned struct {
	Centers   []float64
	Correct   []float64
	Incorrect []float64
	Width     float64
	Min, Max  float64
}

// binScores splits the score range of samples into n equal-width bins.
func binScores(samples []roc.Sample, n int) (*binned, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to bin")
	}
	if n <= 0 {
		n = DefaultBins
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		lo = math.Min(lo, s.Score)
		hi = math.Max(hi, s.Score)
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("scores must be finite")
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	b := &binned{
		Centers:   make([]float64, n),
		Correct:   make([]float64, n),
		Incorrect: make([]float64, n),
		Width:     (hi - lo) / float64(n),
		Min:       lo,
		Max:       hi,
	}
	for i := range b.Centers {
		b.Centers[i] = lo + (float64(i)+0.5)*b.Width
	}
	for _, s := range samples {
		i := min(int((s.Score-lo)/b.Width), n-1)
		if s.Correct {
			b.Correct[i]++
		} else {
			b.Incorrect[i]++
		}
	}
	return b, nil
}

// ScoreDistributionFigure is a histogram of scores split by correctness.
type ScoreDistributionFigure struct {
	Samples  []roc.Sample
	Bins     int
	FileName string
	Title    string
}

func (f *ScoreDistributionFigure) Name() string {
	if f.FileName != "" {
		return f.FileName
	}
	return "score_distribution"
}

func (f *ScoreDistributionFigure) WriteHTML(w io.Writer) error {
	b, err := binScores(f.Samples, f.Bins)
	if err != nil {
		return err
	}

	peak := 1.0
	for i := range b.Centers {
		peak = math.Max(peak, math.Max(b.Correct[i], b.Incorrect[i]))
	}

	title := f.Title
	if title == "" {
		title = "Score Distribution by OCR Correctness"
	}
	c := &chart{
		Title:  title,
		XLabel: "Score",
		YLabel: "Count",
		XMin:   b.Min,
		XMax:   b.Max,
		YMax:   math.Ceil(peak * 1.1),
		Series: []chartSeries{
			{Name: "Correct", X: b.Centers, Y: b.Correct, Style: styleBars, Color: "#2ca02c", BarWidth: b.Width},
			{Name: "Incorrect", X: b.Centers, Y: b.Incorrect, Style: styleBars, Color: "#d62728", BarWidth: b.Width},
		},
	}
	return c.render(w)
}

// AccuracyVsScoreFigure plots the fraction of correct outputs per score
// bin, with an optional marker line at the chosen threshold.
type AccuracyVsScoreFigure struct {
	Samples  []roc.Sample
	Bins     int
	FileName string
	Title    string
	// Threshold draws a vertical line when set and finite.
	Threshold *float64
}

func (f *AccuracyVsScoreFigure) Name() string {
	if f.FileName != "" {
		return f.FileName
	}
	return "accuracy_vs_score"
}

func (f *AccuracyVsScoreFigure) WriteHTML(w io.Writer) error {
	b, err := binScores(f.Samples, f.Bins)
	if err != nil {
		return err
	}

	var xs, ys []float64
	for i, x := range b.Centers {
		total := b.Correct[i] + b.Incorrect[i]
		if total == 0 {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, b.Correct[i]/total)
	}

	title := f.Title
	if title == "" {
		title = "Accuracy vs Score"
	}
	c := &chart{
		Title:  title,
		XLabel: "Score",
		YLabel: "Accuracy",
		XMin:   b.Min,
		XMax:   b.Max,
		YMax:   1,
		Series: []chartSeries{
			{Name: "Accuracy", X: xs, Y: ys, Style: styleLine, Color: "#1f77b4"},
			{Name: "Bins", X: xs, Y: ys, Style: styleMarkers, Color: "#1f77b4"},
		},
	}
	if t := f.Threshold; t != nil && !math.IsInf(*t, 0) && *t >= b.Min && *t <= b.Max {
		c.Series = append(c.Series, chartSeries{
			Name:  fmt.Sprintf("Threshold (τ=%g)", *t),
			X:     []float64{*t, *t},
			Y:     []float64{0, 1},
			Style: styleDashed,
			Color: "#ff7f0e",
		})
	}
	return c.render(w)
}
