package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/ocreval/internal/figures"
	"github.com/spboyer/ocreval/internal/reporting"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	sampleFlags
	dir      string
	workers  int
	title    string
	compress bool
}

func newExportCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <samples.csv>",
		Short: "Export ROC and score figures as HTML",
		Long: `Compute the ROC curve for a sample file and write the configured figures
as standalone HTML pages.

Without an export.figures list in the config, the ROC curve, the score
distribution and accuracy by score are written. Each figure is written
independently: a figure that fails is reported and the rest are still saved.
The command fails only when no figure could be saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportCommandE(cmd, args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Output directory (default paths.figures from config, relative to the config file)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Figures written concurrently (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Title of the ROC figure (default from config)")
	cmd.Flags().BoolVar(&opts.compress, "gzip", false, "Write gzip-compressed .html.gz files")

	return cmd
}

func exportCommandE(cmd *cobra.Command, args []string, opts *exportOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)
	dir := cfg.FiguresDir()
	if opts.dir != "" {
		dir = opts.dir
	}
	if opts.workers > 0 {
		cfg.Export.Workers = opts.workers
	}
	if opts.title != "" {
		cfg.Report.Title = opts.title
	}
	if opts.compress {
		cfg.Export.Compress = true
	}

	a, err := analyze(cmd.InOrStdin(), args[0], cfg)
	if err != nil {
		return err
	}

	specs := withROCTitle(cfg.FigureSpecs(), cfg.Report.Title)
	figs := figures.BuildAll(specs, figures.Data{
		Samples: a.samples,
		Result:  a.result,
		Note:    reporting.FormatMarkdown(a.result, a.opts),
	})

	exporter := &figures.Exporter{Dir: dir, Workers: cfg.Export.Workers, Compress: cfg.Export.Compress}
	outcomes := exporter.Export(cmd.Context(), figs)
	slog.Debug("Export finished", "dir", exporter.Dir, "figures", len(outcomes), "failed", figures.Failed(outcomes))

	fmt.Fprint(cmd.OutOrStdout(), figures.Summarize(outcomes, exporter.Dir)) //nolint:errcheck

	if n := figures.Failed(outcomes); n > 0 && n == len(outcomes) {
		return &ExportFailureError{Message: fmt.Sprintf("export failed: none of %d figures could be saved", n)}
	}
	return nil
}

// withROCTitle gives untitled ROC figures the report title while keeping
// their default file name.
func withROCTitle(specs []figures.Spec, title string) []figures.Spec {
	out := make([]figures.Spec, len(specs))
	for i, s := range specs {
		if s.Kind == figures.KindROC && s.Title == "" {
			if s.Name == "" {
				s.Name = figures.DefaultROCName
			}
			s.Title = title
		}
		out[i] = s
	}
	return out
}
