package main

import (
	"log/slog"

	"github.com/spboyer/ocreval/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ocreval",
		Short: "ocreval - ROC analysis for OCR confidence scores",
		Long: `ocreval evaluates how well an OCR confidence score separates correct from
incorrect output.

It builds the ROC curve for a labelled sample file, reports the area under
the curve, picks the acceptance threshold that maximises TPR - FPR, and
exports the results as self-contained HTML figures.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to a config file (default: search for "+projectconfig.FileName+")")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newROCCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig returns the --config file when given, otherwise the nearest
// .ocreval.yaml above the working directory, otherwise defaults.
func loadConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if path != "" {
		cfg, err = projectconfig.LoadFile(path)
	} else {
		cfg, err = projectconfig.Load(".")
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded project config", "path", cfg.Path)
	return cfg, nil
}
