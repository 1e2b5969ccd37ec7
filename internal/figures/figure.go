// Package figures renders evaluation charts as standalone HTML pages and
// writes them to disk. Each figure is written independently: one failure
// never prevents the others from being saved.
package figures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"
)

//go:generate go tool mockgen -destination=mock_figure.go -package=figures . Figure

// Figure is a chart that can render itself as an HTML document.
type Figure interface {
	// Name is the file stem; the figure is saved as <Name>.html.
	Name() string
	WriteHTML(w io.Writer) error
}

// DefaultWorkers bounds concurrent writes when Exporter.Workers is zero.
const DefaultWorkers = 4

// Outcome records what happened to one figure.
type Outcome struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	Err  error  `json:"-"`
}

// OK reports whether the figure was written.
func (o Outcome) OK() bool { return o.Err == nil }

// Exporter writes figures into Dir, creating it if needed.
type Exporter struct {
	Dir     string
	Workers int
	// Compress writes <name>.html.gz instead of <name>.html.
	Compress bool
}

// Export writes every figure and returns one Outcome per input, in input
// order. Errors are reported per figure and never abort the batch; nothing
// is retried.
func (e *Exporter) Export(ctx context.Context, figs []Figure) []Outcome {
	outcomes := make([]Outcome, len(figs))

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		err = fmt.Errorf("creating %s: %w", e.Dir, err)
		for i, f := range figs {
			outcomes[i] = Outcome{Name: figureName(f, i), Err: err}
		}
		return outcomes
	}

	workers := e.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range figs {
		g.Go(func() error {
			// each goroutine owns outcomes[i]; the group itself never fails
			outcomes[i] = e.exportOne(ctx, f, i)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (e *Exporter) exportOne(ctx context.Context, f Figure, i int) (out Outcome) {
	out.Name = figureName(f, i)

	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("rendering %s: panic: %v", out.Name, r)
		}
		if out.Err != nil {
			slog.Debug("Figure export failed", "name", out.Name, "error", out.Err)
		}
	}()

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	if f == nil {
		out.Err = errors.New("figure is nil")
		return out
	}
	if err := validateName(out.Name); err != nil {
		out.Err = err
		return out
	}

	var buf bytes.Buffer
	if err := f.WriteHTML(&buf); err != nil {
		out.Err = fmt.Errorf("rendering %s: %w", out.Name, err)
		return out
	}

	data := buf.Bytes()
	path := filepath.Join(e.Dir, out.Name+".html")
	if e.Compress {
		var err error
		if data, err = gzipBytes(data); err != nil {
			out.Err = fmt.Errorf("compressing %s: %w", out.Name, err)
			return out
		}
		path += ".gz"
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		out.Err = fmt.Errorf("writing %s: %w", path, err)
		return out
	}

	out.Path = path
	slog.Debug("Figure saved", "name", out.Name, "path", path, "bytes", len(data))
	return out
}

func gzipBytes(data []byte) ([]byte, error) {
	var b bytes.Buffer
	zw, err := gzip.NewWriterLevel(&b, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func figureName(f Figure, i int) (name string) {
	if f == nil {
		return fmt.Sprintf("figure-%d", i+1)
	}
	defer func() {
		if recover() != nil {
			name = fmt.Sprintf("figure-%d", i+1)
		}
	}()
	return f.Name()
}

func validateName(name string) error {
	if name == "" {
		return errors.New("figure name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("figure name %q must be a plain file stem", name)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// NameFromTitle turns a human title into a file stem, e.g.
// "Accuracy & Review Rate" becomes "accuracy_review_rate".
func NameFromTitle(title string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "_"), "_")
}

// Summarize renders outcomes as one line per figure plus a closing line.
func Summarize(outcomes []Outcome, dir string) string {
	var b strings.Builder
	saved := 0
	for _, o := range outcomes {
		if o.OK() {
			saved++
			file := o.Name + ".html"
			if o.Path != "" {
				file = filepath.Base(o.Path)
			}
			b.WriteString(fmt.Sprintf("✓ Saved: %s\n", file))
		} else {
			b.WriteString(fmt.Sprintf("✗ Error saving %s: %v\n", o.Name, o.Err))
		}
	}

	switch {
	case len(outcomes) == 0:
		b.WriteString("No figures to save.\n")
	case saved == len(outcomes):
		b.WriteString(fmt.Sprintf("\nAll %d figures saved to the '%s' directory.\n", saved, dir))
	default:
		b.WriteString(fmt.Sprintf("\nSaved %d of %d figures to the '%s' directory.\n", saved, len(outcomes), dir))
	}
	return b.String()
}

// Failed counts outcomes with an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}
