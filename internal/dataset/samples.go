package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spboyer/ocreval/internal/roc"
)

// Default column names, matching the validation table the scores come from.
const (
	DefaultLabelColumn = "is_correct"
	DefaultScoreColumn = "score"
)

// ParseLabel parses a ground-truth cell. Accepts true/false, 1/0, yes/no,
// t/f and y/n in any case.
func ParseLabel(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "1.0", "yes", "y":
		return true, nil
	case "false", "f", "0", "0.0", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid label %q", s)
}

// Samples converts rows to ROC samples using the given label and score
// columns. Row numbers in errors are 1-based data rows, header excluded.
func Samples(rows []Row, labelColumn, scoreColumn string) ([]roc.Sample, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: no data rows")
	}

	out := make([]roc.Sample, 0, len(rows))
	for i, row := range rows {
		labelCell, ok := row[labelColumn]
		if !ok {
			return nil, fmt.Errorf("dataset: missing label column %q", labelColumn)
		}
		scoreCell, ok := row[scoreColumn]
		if !ok {
			return nil, fmt.Errorf("dataset: missing score column %q", scoreColumn)
		}

		correct, err := ParseLabel(labelCell)
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", i+1, err)
		}
		score, err := strconv.ParseFloat(scoreCell, 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: invalid score %q", i+1, scoreCell)
		}

		out = append(out, roc.Sample{Correct: correct, Score: score})
	}
	return out, nil
}

// LoadSamples reads samples from a CSV file.
func LoadSamples(path, labelColumn, scoreColumn string) ([]roc.Sample, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	samples, err := Samples(rows, labelColumn, scoreColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Loaded samples", "path", path, "count", len(samples))
	return samples, nil
}

// ReadSamples is LoadSamples for an already open reader, such as stdin.
func ReadSamples(r io.Reader, name, labelColumn, scoreColumn string) ([]roc.Sample, error) {
	rows, err := ReadCSV(r, name)
	if err != nil {
		return nil, err
	}
	samples, err := Samples(rows, labelColumn, scoreColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return samples, nil
}
