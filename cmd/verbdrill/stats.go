package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/cli"
)

func newStatsCommand() *cobra.Command {
	var reportPath string
	var templatePath string

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show how many words are learned, in progress and new",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			d, closeStore, err := openDrill(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			result := d.Engine.Statistics()
			cli.WriteStatisticsReport(cmd.OutOrStdout(), result)

			if reportPath == "" {
				return nil
			}
			pdfPath, err := cli.ExportStatisticsPDF(templatePath, reportPath, result, time.Now())
			if err != nil {
				return fmt.Errorf("failed to export the report: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", pdfPath)
			return nil
		},
	}

	command.Flags().StringVar(&reportPath, "pdf", "", "Also write the report to this markdown file and convert it to PDF")
	command.Flags().StringVar(&templatePath, "template", "", "Markdown template of the report, the built-in one when empty")
	return command
}
