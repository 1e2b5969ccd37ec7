package metrics

import (
	"math"

	"github.com/spboyer/ocreval/internal/roc"
)

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// ScoreStats describes the score distribution of one class.
type ScoreStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ClassStats splits scores by ground truth.
type ClassStats struct {
	Correct   ScoreStats `json:"correct"`
	Incorrect ScoreStats `json:"incorrect"`
	// Accuracy is the fraction of samples whose OCR output was correct.
	Accuracy float64 `json:"accuracy"`
}

// Summarize computes per-class score statistics.
func Summarize(samples []roc.Sample) ClassStats {
	var correct, incorrect []float64
	for _, s := range samples {
		if s.Correct {
			correct = append(correct, s.Score)
		} else {
			incorrect = append(incorrect, s.Score)
		}
	}

	cs := ClassStats{
		Correct:   scoreStats(correct),
		Incorrect: scoreStats(incorrect),
	}
	if len(samples) > 0 {
		cs.Accuracy = float64(len(correct)) / float64(len(samples))
	}
	return cs
}

func scoreStats(values []float64) ScoreStats {
	if len(values) == 0 {
		return ScoreStats{}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return ScoreStats{
		Count:  len(values),
		Mean:   Mean(values),
		StdDev: StdDev(values),
		Min:    lo,
		Max:    hi,
	}
}

// Separation is the gap between class means in units of the pooled
// standard deviation (Cohen's d). Returns 0 when either class is empty or
// the pooled deviation is zero.
func Separation(cs ClassStats) float64 {
	if cs.Correct.Count == 0 || cs.Incorrect.Count == 0 {
		return 0
	}
	pooled := math.Sqrt((cs.Correct.StdDev*cs.Correct.StdDev + cs.Incorrect.StdDev*cs.Incorrect.StdDev) / 2)
	if pooled == 0 {
		return 0
	}
	return (cs.Correct.Mean - cs.Incorrect.Mean) / pooled
}
