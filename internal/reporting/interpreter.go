package reporting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spboyer/ocreval/internal/metrics"
	"github.com/spboyer/ocreval/internal/roc"
	"github.com/spboyer/ocreval/internal/statistics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Options carries optional context for the summary report.
type Options struct {
	// UtilityThreshold is a threshold chosen by a separate cost/utility
	// analysis, compared against the ROC-optimal one when set.
	UtilityThreshold *float64
	Interval         *statistics.ConfidenceInterval
	Stats            *metrics.ClassStats
}

// InterpretAUC returns a plain-language label for an area under the curve.
func InterpretAUC(auc float64) string {
	switch {
	case auc >= 0.9:
		return "Excellent (>=0.9)"
	case auc >= 0.8:
		return "Good (0.8-0.9)"
	case auc >= 0.7:
		return "Fair (0.7-0.8)"
	case auc > 0.5:
		return "Poor (0.5-0.7)"
	default:
		return "No better than chance (<=0.5)"
	}
}

// FormatThreshold renders a threshold, spelling out the infinite endpoints.
func FormatThreshold(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// FormatSummaryReport produces the plain-text ROC analysis block.
func FormatSummaryReport(res *roc.Result, opts Options) string {
	var b strings.Builder
	opt := res.Optimal()

	b.WriteString("=== ROC Curve Analysis ===\n")
	b.WriteString(printer.Sprintf("Samples: %d (%d correct, %d incorrect)\n",
		res.Positives+res.Negatives, res.Positives, res.Negatives))
	b.WriteString(fmt.Sprintf("AUC Score: %.3f — %s\n", res.AUC, InterpretAUC(res.AUC)))
	if ci := opts.Interval; ci != nil && ci.NumBootstraps > 0 {
		b.WriteString(printer.Sprintf("AUC %.0f%% CI: [%.3f, %.3f] (%d resamples)\n",
			ci.ConfidenceLevel*100, ci.Lower, ci.Upper, ci.NumBootstraps))
		if !statistics.BetterThanChance(*ci) {
			b.WriteString("  The interval includes 0.5: the score may not separate correct from incorrect output.\n")
		}
	}
	b.WriteString(fmt.Sprintf("Optimal Threshold: %s (accept score > threshold)\n", FormatThreshold(res.OptimalThreshold)))

	b.WriteString("At optimal threshold:\n")
	b.WriteString(fmt.Sprintf("  - True Positive Rate: %.3f\n", opt.TPR))
	b.WriteString(fmt.Sprintf("  - False Positive Rate: %.3f\n", opt.FPR))
	b.WriteString(fmt.Sprintf("  - You correctly identify %.1f%% of correct OCR results\n", opt.TPR*100))
	b.WriteString(fmt.Sprintf("  - You incorrectly accept %.1f%% of incorrect OCR results\n", opt.FPR*100))

	if st := opts.Stats; st != nil {
		b.WriteString("\nScore distribution:\n")
		b.WriteString(fmt.Sprintf("  - Correct:   mean %.3f, sd %.3f, range [%g, %g]\n",
			st.Correct.Mean, st.Correct.StdDev, st.Correct.Min, st.Correct.Max))
		b.WriteString(fmt.Sprintf("  - Incorrect: mean %.3f, sd %.3f, range [%g, %g]\n",
			st.Incorrect.Mean, st.Incorrect.StdDev, st.Incorrect.Min, st.Incorrect.Max))
		b.WriteString(fmt.Sprintf("  - OCR accuracy: %.1f%%, separation (d): %.2f\n",
			st.Accuracy*100, metrics.Separation(*st)))
	}

	if u := opts.UtilityThreshold; u != nil {
		b.WriteString(fmt.Sprintf("\nUtility-optimized threshold: %s\n", FormatThreshold(*u)))
		b.WriteString(fmt.Sprintf("ROC-optimized threshold: %s\n", FormatThreshold(res.OptimalThreshold)))
		b.WriteString(fmt.Sprintf("Difference: %s points\n", FormatThreshold(math.Abs(*u-res.OptimalThreshold))))
	}

	return b.String()
}

// FormatMarkdown renders the same analysis as a markdown note.
func FormatMarkdown(res *roc.Result, opts Options) string {
	var b strings.Builder
	opt := res.Optimal()

	b.WriteString(fmt.Sprintf("**AUC = %.3f** (%s), optimal τ = %s\n\n",
		res.AUC, InterpretAUC(res.AUC), FormatThreshold(res.OptimalThreshold)))
	if ci := opts.Interval; ci != nil && ci.NumBootstraps > 0 {
		b.WriteString(fmt.Sprintf("- %.0f%% bootstrap interval: %.3f to %.3f\n", ci.ConfidenceLevel*100, ci.Lower, ci.Upper))
	}
	b.WriteString(fmt.Sprintf("- Correctly identifies %.1f%% of correct OCR results\n", opt.TPR*100))
	b.WriteString(fmt.Sprintf("- Incorrectly accepts %.1f%% of incorrect OCR results\n", opt.FPR*100))
	if u := opts.UtilityThreshold; u != nil {
		b.WriteString(fmt.Sprintf("- Utility-optimized threshold %s differs by %s points\n",
			FormatThreshold(*u), FormatThreshold(math.Abs(*u-res.OptimalThreshold))))
	}
	return b.String()
}
