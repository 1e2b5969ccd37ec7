package figures

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func mockFigure(ctrl *gomock.Controller, name, body string, renderErr error) *MockFigure {
	f := NewMockFigure(ctrl)
	f.EXPECT().Name().Return(name).AnyTimes()
	f.EXPECT().WriteHTML(gomock.Any()).DoAndReturn(func(w io.Writer) error {
		if renderErr != nil {
			return renderErr
		}
		_, err := io.WriteString(w, body)
		return err
	})
	return f
}

func TestExporter_WritesEveryFigure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := filepath.Join(t.TempDir(), "figures")

	figs := []Figure{
		mockFigure(ctrl, "score_distribution", "<p>one</p>", nil),
		mockFigure(ctrl, "accuracy_vs_score", "<p>two</p>", nil),
		mockFigure(ctrl, "roc_curve", "<p>three</p>", nil),
	}

	e := &Exporter{Dir: dir, Workers: 2}
	outcomes := e.Export(context.Background(), figs)

	require.Len(t, outcomes, 3)
	for i, name := range []string{"score_distribution", "accuracy_vs_score", "roc_curve"} {
		assert.Equal(t, name, outcomes[i].Name)
		assert.True(t, outcomes[i].OK())
		assert.Equal(t, filepath.Join(dir, name+".html"), outcomes[i].Path)
	}

	data, err := os.ReadFile(filepath.Join(dir, "roc_curve.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>three</p>", string(data))
	assert.Equal(t, 0, Failed(outcomes))
}

func TestExporter_Compress(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	e := &Exporter{Dir: dir, Compress: true}
	outcomes := e.Export(context.Background(), []Figure{mockFigure(ctrl, "roc_curve", "<p>zipped</p>", nil)})

	require.Len(t, outcomes, 1)
	require.True(t, outcomes[0].OK())
	assert.Equal(t, filepath.Join(dir, "roc_curve.html.gz"), outcomes[0].Path)
	assert.NoFileExists(t, filepath.Join(dir, "roc_curve.html"))

	f, err := os.Open(outcomes[0].Path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "<p>zipped</p>", string(body))

	assert.Contains(t, Summarize(outcomes, dir), "✓ Saved: roc_curve.html.gz")
}

func TestExporter_FailuresAreIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	// a directory squatting on the target path makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "blocked.html"), 0o755))

	panicky := NewMockFigure(ctrl)
	panicky.EXPECT().Name().Return("panicky").AnyTimes()
	panicky.EXPECT().WriteHTML(gomock.Any()).DoAndReturn(func(io.Writer) error { panic("boom") })

	unnamed := NewMockFigure(ctrl)
	unnamed.EXPECT().Name().Return("").AnyTimes()

	figs := []Figure{
		mockFigure(ctrl, "first", "ok", nil),
		mockFigure(ctrl, "broken", "", errors.New("render exploded")),
		nil,
		mockFigure(ctrl, "blocked", "never lands", nil),
		panicky,
		unnamed,
		mockFigure(ctrl, "last", "ok", nil),
	}

	outcomes := (&Exporter{Dir: dir}).Export(context.Background(), figs)
	require.Len(t, outcomes, len(figs))

	assert.True(t, outcomes[0].OK())
	assert.ErrorContains(t, outcomes[1].Err, "render exploded")
	assert.Equal(t, "figure-3", outcomes[2].Name)
	assert.ErrorContains(t, outcomes[2].Err, "nil")
	assert.ErrorContains(t, outcomes[3].Err, "writing")
	assert.ErrorContains(t, outcomes[4].Err, "panic: boom")
	assert.ErrorContains(t, outcomes[5].Err, "empty")
	assert.True(t, outcomes[6].OK())
	assert.Equal(t, 5, Failed(outcomes))

	_, err := os.Stat(filepath.Join(dir, "broken.html"))
	assert.True(t, os.IsNotExist(err), "failed render must not leave a file behind")
	_, err = os.Stat(filepath.Join(dir, "last.html"))
	assert.NoError(t, err)
}

func TestExporter_RejectsPathNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	for _, name := range []string{"../escape", `sub\dir`, ".."} {
		f := NewMockFigure(ctrl)
		f.EXPECT().Name().Return(name).AnyTimes()

		outcomes := (&Exporter{Dir: t.TempDir()}).Export(context.Background(), []Figure{f})
		require.Len(t, outcomes, 1)
		assert.Error(t, outcomes[0].Err, name)
	}
}

func TestExporter_DirectoryCreationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	a := NewMockFigure(ctrl)
	a.EXPECT().Name().Return("a").AnyTimes()
	b := NewMockFigure(ctrl)
	b.EXPECT().Name().Return("b").AnyTimes()

	outcomes := (&Exporter{Dir: filepath.Join(blocker, "figures")}).Export(context.Background(), []Figure{a, b})
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.ErrorContains(t, o.Err, "creating")
	}
}

func TestExporter_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := NewMockFigure(ctrl)
	f.EXPECT().Name().Return("late").AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := (&Exporter{Dir: t.TempDir()}).Export(ctx, []Figure{f})
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
}

func TestNameFromTitle(t *testing.T) {
	tests := map[string]string{
		"Score Distribution":      "score_distribution",
		"Accuracy & Review Rate":  "accuracy_review_rate",
		"  Utility vs Threshold ": "utility_vs_threshold",
		"ROC (AUC)":               "roc_auc",
		"":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NameFromTitle(in), in)
	}
}

func TestSummarize(t *testing.T) {
	all := []Outcome{{Name: "a", Path: "figs/a.html"}, {Name: "b", Path: "figs/b.html"}}
	out := Summarize(all, "figs")
	assert.Contains(t, out, "✓ Saved: a.html")
	assert.Contains(t, out, "✓ Saved: b.html")
	assert.Contains(t, out, "All 2 figures saved to the 'figs' directory.")

	mixed := []Outcome{{Name: "a", Path: "figs/a.html"}, {Name: "b", Err: errors.New("disk full")}}
	out = Summarize(mixed, "figs")
	assert.Contains(t, out, "✗ Error saving b: disk full")
	assert.Contains(t, out, "Saved 1 of 2 figures")

	assert.Contains(t, Summarize(nil, "figs"), "No figures to save.")
}
