package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/ocreval/internal/figures"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Columns.Label", "is_correct", cfg.Columns.Label)
	assertEqual(t, "Columns.Score", "score", cfg.Columns.Score)
	assertEqual(t, "Paths.Figures", "figures/", cfg.Paths.Figures)
	assertEqualInt(t, "Export.Workers", 4, cfg.Export.Workers)
	assertEqualInt(t, "Bootstrap.Iterations", 2000, *cfg.Bootstrap.Iterations)
	if cfg.Bootstrap.Confidence != 0.95 {
		t.Errorf("Bootstrap.Confidence = %v, want 0.95", cfg.Bootstrap.Confidence)
	}
	assertInt64Ptr(t, "Bootstrap.Seed", -1, cfg.Bootstrap.Seed)
	assertEqual(t, "Report.Title", "ROC Curve for OCR System Performance", cfg.Report.Title)
	if cfg.Report.UtilityThreshold != nil {
		t.Error("Report.UtilityThreshold should be nil by default")
	}
	assertEqual(t, "Path", "", cfg.Path)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
columns:
  label: ok
  score: confidence
paths:
  figures: out/figs
export:
  workers: 2
  compress: true
  figures:
    - kind: roc
      title: Validation ROC
    - kind: score_distribution
      name: hist
      params:
        bins: 30
bootstrap:
  iterations: 500
  confidence: 0.9
  seed: 7
report:
  title: My OCR
  utility_threshold: 72
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Columns.Label", "ok", cfg.Columns.Label)
	assertEqual(t, "Columns.Score", "confidence", cfg.Columns.Score)
	assertEqual(t, "Paths.Figures", "out/figs", cfg.Paths.Figures)
	assertEqualInt(t, "Export.Workers", 2, cfg.Export.Workers)
	if !cfg.Export.Compress {
		t.Error("Export.Compress should be true")
	}
	assertEqualInt(t, "Bootstrap.Iterations", 500, *cfg.Bootstrap.Iterations)
	if cfg.Bootstrap.Confidence != 0.9 {
		t.Errorf("Bootstrap.Confidence = %v, want 0.9", cfg.Bootstrap.Confidence)
	}
	assertInt64Ptr(t, "Bootstrap.Seed", 7, cfg.Bootstrap.Seed)
	assertEqual(t, "Report.Title", "My OCR", cfg.Report.Title)
	if cfg.Report.UtilityThreshold == nil || *cfg.Report.UtilityThreshold != 72 {
		t.Errorf("Report.UtilityThreshold = %v, want 72", cfg.Report.UtilityThreshold)
	}
	assertEqual(t, "Path", filepath.Join(dir, FileName), cfg.Path)

	specs := cfg.FigureSpecs()
	if len(specs) != 2 {
		t.Fatalf("FigureSpecs() len = %d, want 2", len(specs))
	}
	if specs[0].Kind != figures.KindROC || specs[0].Title != "Validation ROC" {
		t.Errorf("specs[0] = %+v", specs[0])
	}
	if specs[1].Name != "hist" || specs[1].Params["bins"] != 30 {
		t.Errorf("specs[1] = %+v", specs[1])
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
columns:
  score: conf
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Columns.Score", "conf", cfg.Columns.Score)
	assertEqual(t, "Columns.Label", "is_correct", cfg.Columns.Label)
	assertEqual(t, "Paths.Figures", "figures/", cfg.Paths.Figures)
	assertInt64Ptr(t, "Bootstrap.Seed", -1, cfg.Bootstrap.Seed)
	if got := len(cfg.FigureSpecs()); got != len(figures.DefaultSpecs()) {
		t.Errorf("FigureSpecs() len = %d, want defaults", got)
	}
}

func TestLoad_ZeroSeedIsKept(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "bootstrap:\n  seed: 0\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertInt64Ptr(t, "Bootstrap.Seed", 0, cfg.Bootstrap.Seed)
}

func TestLoad_ZeroIterationsDisablesBootstrap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "bootstrap:\n  iterations: 0\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Bootstrap.Iterations == nil || *cfg.Bootstrap.Iterations != 0 {
		t.Errorf("Bootstrap.Iterations = %v, want 0", cfg.Bootstrap.Iterations)
	}
}

func TestFiguresDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "paths:\n  figures: out/figs\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertEqual(t, "FiguresDir()", filepath.Join(dir, "out", "figs"), cfg.FiguresDir())

	abs := filepath.Join(t.TempDir(), "abs")
	cfg.Paths.Figures = abs
	assertEqual(t, "FiguresDir() absolute", abs, cfg.FiguresDir())

	assertEqual(t, "FiguresDir() defaults", DefaultFiguresDir, New().FiguresDir())
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertEqual(t, "Columns.Label", "is_correct", cfg.Columns.Label)
	assertEqual(t, "Path", "", cfg.Path)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "columns: [not: valid")

	if _, err := Load(dir); err == nil {
		t.Fatal("Load() should return an error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, `
paths:
  figures: found-it
`)

	child := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(child)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Paths.Figures", "found-it", cfg.Paths.Figures)
	assertEqual(t, "Columns.Score", "score", cfg.Columns.Score)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", "report:\n  title: Direct\n")

	cfg, err := LoadFile(filepath.Join(dir, "custom.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	assertEqual(t, "Report.Title", "Direct", cfg.Report.Title)

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
}

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertInt64Ptr(t *testing.T, field string, want int64, got *int64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
