// Package wizard collects project settings interactively and renders them
// as an .ocreval.yaml file.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/ocreval/internal/projectconfig"
	"golang.org/x/term"
)

// ConfigSpec holds all fields collected during the interactive wizard.
type ConfigSpec struct {
	LabelColumn         string
	ScoreColumn         string
	FiguresDir          string
	Title               string
	BootstrapIterations int
}

// DefaultConfigSpec returns a spec pre-populated from the project defaults.
func DefaultConfigSpec() *ConfigSpec {
	d := projectconfig.New()
	return &ConfigSpec{
		LabelColumn:         d.Columns.Label,
		ScoreColumn:         d.Columns.Score,
		FiguresDir:          d.Paths.Figures,
		Title:               d.Report.Title,
		BootstrapIterations: *d.Bootstrap.Iterations,
	}
}

const configTemplate = `# ocreval project configuration
columns:
  label: {{ quote .LabelColumn }}
  score: {{ quote .ScoreColumn }}
paths:
  figures: {{ quote .FiguresDir }}
bootstrap:
  iterations: {{ .BootstrapIterations }}
report:
  title: {{ quote .Title }}
`

var bootstrapChoices = []int{0, 1000, projectconfig.DefaultBootstrapIterations, 5000}

// RunConfigWizard runs an interactive huh form to collect project settings.
// Empty answers keep the defaults.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	spec := DefaultConfigSpec()
	iterations := strconv.Itoa(spec.BootstrapIterations)

	options := make([]huh.Option[string], 0, len(bootstrapChoices))
	for _, n := range bootstrapChoices {
		label := strconv.Itoa(n)
		if n == 0 {
			label = "off"
		}
		options = append(options, huh.NewOption(label, strconv.Itoa(n)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label column").
				Description("CSV column holding whether the OCR output was correct").
				Placeholder(spec.LabelColumn).
				Value(&spec.LabelColumn),
			huh.NewInput().
				Title("Score column").
				Description("CSV column holding the confidence score").
				Placeholder(spec.ScoreColumn).
				Value(&spec.ScoreColumn),
			huh.NewInput().
				Title("Figures directory").
				Description("Where exported HTML figures are written").
				Placeholder(spec.FiguresDir).
				Value(&spec.FiguresDir),
			huh.NewInput().
				Title("Report title").
				Placeholder(spec.Title).
				Value(&spec.Title),
			huh.NewSelect[string]().
				Title("Bootstrap resamples for the AUC interval").
				Options(options...).
				Value(&iterations),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	n, err := strconv.Atoi(iterations)
	if err != nil {
		return nil, fmt.Errorf("invalid bootstrap iterations %q: %w", iterations, err)
	}
	spec.BootstrapIterations = n
	spec.normalize()
	return spec, nil
}

// normalize trims answers and restores defaults for blank ones.
func (s *ConfigSpec) normalize() {
	d := DefaultConfigSpec()
	fill := func(v *string, def string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = def
		}
	}
	fill(&s.LabelColumn, d.LabelColumn)
	fill(&s.ScoreColumn, d.ScoreColumn)
	fill(&s.FiguresDir, d.FiguresDir)
	fill(&s.Title, d.Title)
	if s.BootstrapIterations < 0 {
		s.BootstrapIterations = 0
	}
}

// GenerateConfigYAML renders an .ocreval.yaml from the given spec.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	s := *spec
	s.normalize()

	tmpl, err := template.New("config").
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, &s); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
