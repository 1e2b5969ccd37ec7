// Package projectconfig provides the ProjectConfig struct and loader for
// .ocreval.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/ocreval/internal/figures"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = ".ocreval.yaml"

// Default values for project configuration, used by New().
const (
	DefaultLabelColumn = "is_correct"
	DefaultScoreColumn = "score"

	DefaultFiguresDir = "figures/"
	DefaultWorkers    = 4

	DefaultBootstrapIterations = 2000
	DefaultConfidenceLevel     = 0.95
	DefaultSeed                = -1

	DefaultTitle = "ROC Curve for OCR System Performance"
)

// ColumnsConfig names the columns holding ground truth and score.
type ColumnsConfig struct {
	Label string `yaml:"label,omitempty"`
	Score string `yaml:"score,omitempty"`
}

// PathsConfig holds output directories.
type PathsConfig struct {
	Figures string `yaml:"figures,omitempty"`
}

// ExportConfig holds figure export settings.
type ExportConfig struct {
	Workers  int            `yaml:"workers,omitempty"`
	Compress bool           `yaml:"compress,omitempty"`
	Figures  []figures.Spec `yaml:"figures,omitempty"`
}

// BootstrapConfig controls the AUC confidence interval.
type BootstrapConfig struct {
	// Iterations of 0 disables the interval.
	Iterations *int    `yaml:"iterations,omitempty"`
	Confidence float64 `yaml:"confidence,omitempty"`
	Seed       *int64  `yaml:"seed,omitempty"`
}

// ReportConfig holds report presentation settings.
type ReportConfig struct {
	Title string `yaml:"title,omitempty"`
	// UtilityThreshold is a threshold picked by a separate utility analysis,
	// shown next to the ROC-optimal one.
	UtilityThreshold *float64 `yaml:"utility_threshold,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .ocreval.yaml.
type ProjectConfig struct {
	Columns   ColumnsConfig   `yaml:"columns,omitempty"`
	Paths     PathsConfig     `yaml:"paths,omitempty"`
	Export    ExportConfig    `yaml:"export,omitempty"`
	Bootstrap BootstrapConfig `yaml:"bootstrap,omitempty"`
	Report    ReportConfig    `yaml:"report,omitempty"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Columns: ColumnsConfig{
			Label: DefaultLabelColumn,
			Score: DefaultScoreColumn,
		},
		Paths: PathsConfig{
			Figures: DefaultFiguresDir,
		},
		Export: ExportConfig{
			Workers: DefaultWorkers,
		},
		Bootstrap: BootstrapConfig{
			Iterations: intPtr(DefaultBootstrapIterations),
			Confidence: DefaultConfidenceLevel,
			Seed:       int64Ptr(DefaultSeed),
		},
		Report: ReportConfig{
			Title: DefaultTitle,
		},
	}
}

// FigureSpecs returns the configured figures, or the default set.
func (c *ProjectConfig) FigureSpecs() []figures.Spec {
	if len(c.Export.Figures) > 0 {
		return c.Export.Figures
	}
	return figures.DefaultSpecs()
}

// FiguresDir returns Paths.Figures. A relative directory is resolved
// against the directory holding the config file, or left relative to the
// working directory when no file was loaded.
func (c *ProjectConfig) FiguresDir() string {
	return c.resolve(c.Paths.Figures)
}

func (c *ProjectConfig) resolve(path string) string {
	if c.Path == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(c.Path), path)
}

// Load finds .ocreval.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if err := merge(cfg, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFile reads one specific config file; it does not search parents.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg := New()
	if err := merge(cfg, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func merge(cfg *ProjectConfig, data []byte) error {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}
	mergeConfig(cfg, &fileCfg)
	return nil
}

// findConfigFile walks up from dir looking for .ocreval.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Columns.Label != "" {
		dst.Columns.Label = src.Columns.Label
	}
	if src.Columns.Score != "" {
		dst.Columns.Score = src.Columns.Score
	}

	if src.Paths.Figures != "" {
		dst.Paths.Figures = src.Paths.Figures
	}

	if src.Export.Workers != 0 {
		dst.Export.Workers = src.Export.Workers
	}
	if src.Export.Compress {
		dst.Export.Compress = true
	}
	if len(src.Export.Figures) > 0 {
		dst.Export.Figures = src.Export.Figures
	}

	if src.Bootstrap.Iterations != nil {
		dst.Bootstrap.Iterations = src.Bootstrap.Iterations
	}
	if src.Bootstrap.Confidence != 0 {
		dst.Bootstrap.Confidence = src.Bootstrap.Confidence
	}
	if src.Bootstrap.Seed != nil {
		dst.Bootstrap.Seed = src.Bootstrap.Seed
	}

	if src.Report.Title != "" {
		dst.Report.Title = src.Report.Title
	}
	if src.Report.UtilityThreshold != nil {
		dst.Report.UtilityThreshold = src.Report.UtilityThreshold
	}
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}
