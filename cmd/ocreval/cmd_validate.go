package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/ocreval/internal/projectconfig"
	"github.com/spboyer/ocreval/internal/validation"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config]",
		Short: "Check a config file against the schema",
		Long: `Validate an .ocreval.yaml file against the embedded JSON Schema.

Without an argument, the --config file or the nearest .ocreval.yaml above the
working directory is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: validateCommandE,
	}
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	path, err := configPathFor(cmd, args)
	if err != nil {
		return err
	}

	errs, err := validation.ValidateConfigFile(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintf(w, "✓ %s is valid\n", path) //nolint:errcheck
		return nil
	}

	fmt.Fprintf(w, "✗ %s has %d schema error(s):\n", path, len(errs)) //nolint:errcheck
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e) //nolint:errcheck
	}
	return fmt.Errorf("%s failed schema validation", path)
}

func configPathFor(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return "", err
	}
	if cfg.Path == "" {
		return "", fmt.Errorf("no %s found in the current directory or its parents", projectconfig.FileName)
	}
	return cfg.Path, nil
}
