package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/ocreval/internal/metrics"
	"github.com/spboyer/ocreval/internal/roc"
	"github.com/spboyer/ocreval/internal/statistics"
)

// Threshold marshals to a JSON number, or to "+Inf" / "-Inf" for the
// curve endpoints, which JSON numbers cannot represent.
type Threshold float64

func (t Threshold) MarshalJSON() ([]byte, error) {
	v := float64(t)
	if math.IsInf(v, 0) {
		return json.Marshal(FormatThreshold(v))
	}
	return json.Marshal(v)
}

func (t *Threshold) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "+Inf", "Inf":
			*t = Threshold(math.Inf(1))
		case "-Inf":
			*t = Threshold(math.Inf(-1))
		default:
			return fmt.Errorf("invalid threshold %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Threshold(v)
	return nil
}

// CurvePoint is one row of the exported curve table.
type CurvePoint struct {
	Threshold Threshold `json:"threshold"`
	FPR       float64   `json:"fpr"`
	TPR       float64   `json:"tpr"`
}

// CurveReport is the interchange form of an evaluation: the curve table
// plus the scalar results.
type CurveReport struct {
	AUC              float64                        `json:"auc"`
	OptimalThreshold Threshold                      `json:"optimal_threshold"`
	OptimalIndex     int                            `json:"optimal_index"`
	Positives        int                            `json:"positives"`
	Negatives        int                            `json:"negatives"`
	Interval         *statistics.ConfidenceInterval `json:"auc_interval,omitempty"`
	Stats            *metrics.ClassStats            `json:"score_stats,omitempty"`
	UtilityThreshold *float64                       `json:"utility_threshold,omitempty"`
	Curve            []CurvePoint                   `json:"curve"`
}

// NewCurveReport builds the interchange form of res.
func NewCurveReport(res *roc.Result, opts Options) *CurveReport {
	r := &CurveReport{
		AUC:              res.AUC,
		OptimalThreshold: Threshold(res.OptimalThreshold),
		OptimalIndex:     res.OptimalIndex,
		Positives:        res.Positives,
		Negatives:        res.Negatives,
		Interval:         opts.Interval,
		Stats:            opts.Stats,
		UtilityThreshold: opts.UtilityThreshold,
		Curve:            make([]CurvePoint, len(res.Curve)),
	}
	for i, p := range res.Curve {
		r.Curve[i] = CurvePoint{Threshold: Threshold(p.Threshold), FPR: p.FPR, TPR: p.TPR}
	}
	return r
}

// WriteCurveJSON writes the interchange form as indented JSON.
func WriteCurveJSON(w io.Writer, res *roc.Result, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewCurveReport(res, opts))
}

// WriteCurveCSV writes the curve as a threshold,fpr,tpr table.
func WriteCurveCSV(w io.Writer, res *roc.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"threshold", "fpr", "tpr"}); err != nil {
		return err
	}
	for _, p := range res.Curve {
		rec := []string{
			FormatThreshold(p.Threshold),
			fmt.Sprintf("%.6f", p.FPR),
			fmt.Sprintf("%.6f", p.TPR),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCurveTable writes an aligned terminal table of the curve, marking
// the optimal row.
func WriteCurveTable(w io.Writer, res *roc.Result) error {
	header := []string{"#", "Threshold", "FPR", "TPR", "TPR-FPR", ""}
	rows := make([][]string, 0, len(res.Curve))
	for i, p := range res.Curve {
		mark := ""
		if i == res.OptimalIndex {
			mark = "★ optimal"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			FormatThreshold(p.Threshold),
			fmt.Sprintf("%.3f", p.FPR),
			fmt.Sprintf("%.3f", p.TPR),
			fmt.Sprintf("%+.3f", p.TPR-p.FPR),
			mark,
		})
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, widths[i])
		}
		return strings.TrimRight("  "+strings.Join(parts, "  "), " ") + "\n"
	}

	var b strings.Builder
	b.WriteString(line(header))
	sep := make([]string, len(header))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	b.WriteString(line(sep))
	for _, row := range rows {
		b.WriteString(line(row))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
