package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/vocabulary"
)

func newValidateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "validate",
		Short: "Validate the vocabulary for missing fields and duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			path := cfg.Vocabulary.Path()
			entries, err := vocabulary.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load the vocabulary: %w", err)
			}

			errs := vocabulary.Validate(path, entries)
			displayValidationErrors(cmd.OutOrStdout(), len(entries), errs)
			if len(errs) > 0 {
				return fmt.Errorf("validation failed with %d error(s)", len(errs))
			}
			return nil
		},
	}
	return command
}

func displayValidationErrors(w io.Writer, total int, errs []vocabulary.ValidationError) {
	if len(errs) == 0 {
		_, _ = color.New(color.FgGreen).Fprintf(w, "All validations passed! (%d words)\n", total)
		return
	}

	_, _ = color.New(color.FgRed, color.Bold).Fprintf(w, "Vocabulary Validation Errors (%d)\n", len(errs))
	for _, err := range errs {
		_, _ = fmt.Fprintf(w, "  - %s\n", err.Error())
	}
	_, _ = fmt.Fprintf(w, "\nTotal errors: %d\n", len(errs))
}
