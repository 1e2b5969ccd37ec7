package reporting

import (
	"math"
	"testing"

	"github.com/spboyer/ocreval/internal/metrics"
	"github.com/spboyer/ocreval/internal/roc"
	"github.com/spboyer/ocreval/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separable(t *testing.T) *roc.Result {
	t.Helper()
	res, err := roc.Compute([]roc.Sample{
		{Correct: true, Score: 0.9},
		{Correct: true, Score: 0.8},
		{Correct: false, Score: 0.6},
		{Correct: false, Score: 0.3},
	})
	require.NoError(t, err)
	return res
}

func TestInterpretAUC(t *testing.T) {
	tests := []struct {
		name string
		auc  float64
		want string
	}{
		{"perfect", 1.0, "Excellent (>=0.9)"},
		{"excellent boundary", 0.9, "Excellent (>=0.9)"},
		{"good", 0.85, "Good (0.8-0.9)"},
		{"fair", 0.7, "Fair (0.7-0.8)"},
		{"poor", 0.55, "Poor (0.5-0.7)"},
		{"chance", 0.5, "No better than chance (<=0.5)"},
		{"inverted", 0.2, "No better than chance (<=0.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretAUC(tt.auc))
		})
	}
}

func TestFormatThreshold(t *testing.T) {
	assert.Equal(t, "+Inf", FormatThreshold(math.Inf(1)))
	assert.Equal(t, "-Inf", FormatThreshold(math.Inf(-1)))
	assert.Equal(t, "0.6", FormatThreshold(0.6))
	assert.Equal(t, "72", FormatThreshold(72))
	assert.Equal(t, "0.2", FormatThreshold(0.8-0.6))
}

func TestFormatSummaryReport_Basic(t *testing.T) {
	report := FormatSummaryReport(separable(t), Options{})

	assert.Contains(t, report, "=== ROC Curve Analysis ===")
	assert.Contains(t, report, "Samples: 4 (2 correct, 2 incorrect)")
	assert.Contains(t, report, "AUC Score: 1.000 — Excellent (>=0.9)")
	assert.Contains(t, report, "Optimal Threshold: 0.6")
	assert.Contains(t, report, "True Positive Rate: 1.000")
	assert.Contains(t, report, "False Positive Rate: 0.000")
	assert.Contains(t, report, "You correctly identify 100.0% of correct OCR results")
	assert.Contains(t, report, "You incorrectly accept 0.0% of incorrect OCR results")
	assert.NotContains(t, report, "Utility-optimized")
	assert.NotContains(t, report, "CI:")
}

func TestFormatSummaryReport_WithOptions(t *testing.T) {
	utility := 0.7
	ci := statistics.ConfidenceInterval{Lower: 0.45, Upper: 0.95, Estimate: 0.8, ConfidenceLevel: 0.95, NumBootstraps: 1500}
	stats := metrics.ClassStats{
		Correct:   metrics.ScoreStats{Count: 2, Mean: 0.85, StdDev: 0.05, Min: 0.8, Max: 0.9},
		Incorrect: metrics.ScoreStats{Count: 2, Mean: 0.45, StdDev: 0.15, Min: 0.3, Max: 0.6},
		Accuracy:  0.5,
	}

	report := FormatSummaryReport(separable(t), Options{UtilityThreshold: &utility, Interval: &ci, Stats: &stats})

	assert.Contains(t, report, "AUC 95% CI: [0.450, 0.950] (1,500 resamples)")
	assert.Contains(t, report, "The interval includes 0.5")
	assert.Contains(t, report, "OCR accuracy: 50.0%")
	assert.Contains(t, report, "Utility-optimized threshold: 0.7")
	assert.Contains(t, report, "ROC-optimized threshold: 0.6")
	assert.Contains(t, report, "Difference: 0.1 points")
}

func TestFormatMarkdown(t *testing.T) {
	utility := 0.9
	md := FormatMarkdown(separable(t), Options{UtilityThreshold: &utility})

	assert.Contains(t, md, "**AUC = 1.000**")
	assert.Contains(t, md, "optimal τ = 0.6")
	assert.Contains(t, md, "- Correctly identifies 100.0% of correct OCR results")
	assert.Contains(t, md, "- Utility-optimized threshold 0.9 differs by 0.3 points")
}
