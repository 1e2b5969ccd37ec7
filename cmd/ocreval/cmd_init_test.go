package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/ocreval/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_WritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")

	out, err := runCLI(t, "init", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, projectconfig.FileName)
	assert.Contains(t, out, "Created "+path)

	cfg, err := projectconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultLabelColumn, cfg.Columns.Label)
	assert.Equal(t, projectconfig.DefaultScoreColumn, cfg.Columns.Score)
	assert.Equal(t, projectconfig.DefaultTitle, cfg.Report.Title)
	assert.Equal(t, projectconfig.DefaultBootstrapIterations, *cfg.Bootstrap.Iterations)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, projectconfig.FileName, "columns:\n  label: keep\n")

	_, err := runCLI(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "label: keep")
}

func TestInitCommand_Force(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, projectconfig.FileName, "columns:\n  label: keep\n")

	_, err := runCLI(t, "init", dir, "--force")
	require.NoError(t, err)

	cfg, err := projectconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultLabelColumn, cfg.Columns.Label)
}
