package main

import (
	"fmt"
	"io"

	"github.com/spboyer/ocreval/internal/dataset"
	"github.com/spboyer/ocreval/internal/metrics"
	"github.com/spboyer/ocreval/internal/projectconfig"
	"github.com/spboyer/ocreval/internal/reporting"
	"github.com/spboyer/ocreval/internal/roc"
	"github.com/spboyer/ocreval/internal/spinner"
	"github.com/spboyer/ocreval/internal/statistics"
	"github.com/spf13/cobra"
)

// sampleFlags are the flags shared by commands that read a sample file.
type sampleFlags struct {
	labelColumn      string
	scoreColumn      string
	utilityThreshold float64
}

func (f *sampleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.labelColumn, "label-col", "", "Column holding ground truth (default from config, then \"is_correct\")")
	cmd.Flags().StringVar(&f.scoreColumn, "score-col", "", "Column holding the confidence score (default from config, then \"score\")")
	cmd.Flags().Float64Var(&f.utilityThreshold, "utility-threshold", 0, "Threshold chosen by a utility analysis, reported next to the ROC optimum")
}

// apply overlays explicitly set flags onto cfg.
func (f *sampleFlags) apply(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) {
	if f.labelColumn != "" {
		cfg.Columns.Label = f.labelColumn
	}
	if f.scoreColumn != "" {
		cfg.Columns.Score = f.scoreColumn
	}
	if cmd.Flags().Changed("utility-threshold") {
		u := f.utilityThreshold
		cfg.Report.UtilityThreshold = &u
	}
}

// analysis is everything computed from one sample file.
type analysis struct {
	samples []roc.Sample
	result  *roc.Result
	opts    reporting.Options
}

// analyze loads samples from path, or from stdin when path is "-", and
// evaluates them.
func analyze(stdin io.Reader, path string, cfg *projectconfig.ProjectConfig) (*analysis, error) {
	var (
		samples []roc.Sample
		err     error
	)
	if path == "-" {
		samples, err = dataset.ReadSamples(stdin, "stdin", cfg.Columns.Label, cfg.Columns.Score)
	} else {
		samples, err = dataset.LoadSamples(path, cfg.Columns.Label, cfg.Columns.Score)
	}
	if err != nil {
		return nil, err
	}

	res, err := roc.Compute(samples)
	if err != nil {
		return nil, fmt.Errorf("computing ROC curve for %s: %w", path, err)
	}

	stats := metrics.Summarize(samples)
	return &analysis{
		samples: samples,
		result:  res,
		opts: reporting.Options{
			UtilityThreshold: cfg.Report.UtilityThreshold,
			Stats:            &stats,
		},
	}, nil
}

type rocOptions struct {
	sampleFlags
	format     string
	bootstrap  int
	confidence float64
	seed       int64
}

func newROCCommand() *cobra.Command {
	var opts rocOptions

	cmd := &cobra.Command{
		Use:   "roc <samples.csv | ->",
		Short: "Compute the ROC curve, AUC and optimal threshold",
		Long: `Compute the ROC curve of a confidence score against ground truth.

The sample file is a CSV with a header row. One column says whether the OCR
output was correct (true/false, 1/0, yes/no), another holds the confidence
score. Pass - to read the samples from stdin. The optimal threshold maximises TPR - FPR; a sample is accepted when
its score is strictly greater than the threshold.

Unless --bootstrap is 0, a percentile bootstrap confidence interval for the
AUC is reported as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rocCommandE(cmd, args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table, json or csv")
	cmd.Flags().IntVar(&opts.bootstrap, "bootstrap", 0, "Bootstrap resamples for the AUC interval, 0 disables (default from config)")
	cmd.Flags().Float64Var(&opts.confidence, "confidence", 0, "Confidence level of the AUC interval (default from config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for the bootstrap, negative for random (default from config)")

	return cmd
}

func rocCommandE(cmd *cobra.Command, args []string, opts *rocOptions) error {
	switch opts.format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("unsupported format %q: must be table, json or csv", opts.format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)

	iterations := *cfg.Bootstrap.Iterations
	if cmd.Flags().Changed("bootstrap") {
		iterations = opts.bootstrap
	}
	confidence := cfg.Bootstrap.Confidence
	if cmd.Flags().Changed("confidence") {
		confidence = opts.confidence
	}
	seed := *cfg.Bootstrap.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}

	a, err := analyze(cmd.InOrStdin(), args[0], cfg)
	if err != nil {
		return err
	}

	if iterations > 0 {
		stop := spinner.StartIfTerminal(cmd.ErrOrStderr(), fmt.Sprintf("Bootstrapping AUC (%d resamples)...", iterations))
		ci, err := statistics.BootstrapAUC(a.samples, statistics.Options{
			ConfidenceLevel: confidence,
			Iterations:      iterations,
			Seed:            seed,
		})
		stop()
		if err != nil {
			return fmt.Errorf("bootstrapping AUC: %w", err)
		}
		a.opts.Interval = &ci
	}

	return writeROC(cmd.OutOrStdout(), opts.format, a)
}

func writeROC(w io.Writer, format string, a *analysis) error {
	switch format {
	case "json":
		return reporting.WriteCurveJSON(w, a.result, a.opts)
	case "csv":
		return reporting.WriteCurveCSV(w, a.result)
	}

	if err := reporting.WriteCurveTable(w, a.result); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s", reporting.FormatSummaryReport(a.result, a.opts))
	return err
}
