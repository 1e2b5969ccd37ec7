package figures

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/spboyer/ocreval/internal/reporting"
	"github.com/spboyer/ocreval/internal/roc"
	"github.com/yuin/goldmark"
)

const (
	// DefaultROCTitle is the page title used when ROCFigure.Title is empty.
	DefaultROCTitle = "ROC Curve for OCR System Performance"
	// DefaultROCName is the file stem used when ROCFigure.FileName is empty.
	DefaultROCName = "roc_curve"
)

// ROCFigure renders an evaluated ROC curve: the curve itself, the
// random-classifier diagonal and a marker on the optimal threshold.
type ROCFigure struct {
	Result *roc.Result
	// FileName overrides DefaultROCName.
	FileName string
	Title    string
	// Note is markdown shown under the chart.
	Note string
}

func (f *ROCFigure) Name() string {
	if f.FileName != "" {
		return f.FileName
	}
	return DefaultROCName
}

func (f *ROCFigure) WriteHTML(w io.Writer) error {
	if f.Result == nil {
		return fmt.Errorf("no ROC result to plot")
	}

	title := f.Title
	if title == "" {
		title = DefaultROCTitle
	}

	note, err := markdownToHTML(f.Note)
	if err != nil {
		return err
	}

	res := f.Result
	series := res.Series()
	opt := res.Optimal()
	threshold := reporting.FormatThreshold(res.OptimalThreshold)

	c := &chart{
		Title:  title,
		XLabel: "False Positive Rate (FPR)",
		YLabel: "True Positive Rate (TPR)",
		XMax:   1,
		YMax:   1,
		Series: []chartSeries{
			{Name: res.Label(), X: series.X, Y: series.Y, Style: styleLine, Color: "#1f77b4"},
			{Name: "Random Classifier", X: []float64{0, 1}, Y: []float64{0, 1}, Style: styleDashed, Color: "#d62728"},
			{
				Name:  fmt.Sprintf("Optimal Threshold (τ=%s)", threshold),
				X:     []float64{opt.FPR},
				Y:     []float64{opt.TPR},
				Style: styleStar,
				Color: "#2ca02c",
			},
		},
		Annotation: []string{
			fmt.Sprintf("AUC = %.3f", res.AUC),
			fmt.Sprintf("Optimal τ = %s", threshold),
		},
		Note: note,
	}
	return c.render(w)
}

// markdownToHTML converts a markdown note for embedding in a page.
func markdownToHTML(md string) (template.HTML, error) {
	if md == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("rendering note: %w", err)
	}
	// goldmark omits raw HTML unless html.WithUnsafe is set
	return template.HTML(buf.String()), nil //nolint:gosec
}
