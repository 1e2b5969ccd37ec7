package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const separableCSV = `is_correct,score
true,0.9
true,0.8
false,0.6
false,0.3
`

// writeTestFile writes content to dir/name and returns the path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportFailureError(t *testing.T) {
	err := &ExportFailureError{
		Message: "export failed: none of 3 figures could be saved",
	}

	assert.Equal(t, "export failed: none of 3 figures could be saved", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "ExportFailureError",
			err:      &ExportFailureError{Message: "export failed"},
			wantCode: ExitExportFailed,
		},
		{
			name:     "regular error",
			err:      errors.New("config error"),
			wantCode: ExitError,
		},
		{
			name:     "wrapped ExportFailureError",
			err:      fmt.Errorf("context: %w", &ExportFailureError{Message: "export failed"}),
			wantCode: ExitExportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := ExitError
			var exportErr *ExportFailureError
			if errors.As(tt.err, &exportErr) {
				code = ExitExportFailed
			}
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"roc", "export", "init", "validate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}
