package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/drill"
	"github.com/at-ishikawa/verbdrill/internal/progress"
)

func newMigrateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}
	command.AddCommand(newMigrateProgressCommand())
	return command
}

func newMigrateProgressCommand() *cobra.Command {
	var from string

	command := &cobra.Command{
		Use:   "progress",
		Short: "Copy progress from another backend into the configured one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			to := cfg.Progress.Backend
			if from == to {
				return fmt.Errorf("source and destination are the same backend %q", from)
			}

			ctx := cmd.Context()
			src, closeSrc, err := drill.OpenStore(ctx, cfg, from)
			if err != nil {
				return fmt.Errorf("failed to open the %s progress store: %w", from, err)
			}
			defer func() {
				_ = closeSrc()
			}()
			dst, closeDst, err := drill.OpenStore(ctx, cfg, to)
			if err != nil {
				return fmt.Errorf("failed to open the %s progress store: %w", to, err)
			}
			defer func() {
				_ = closeDst()
			}()

			copied, err := progress.Copy(ctx, src, dst)
			if err != nil {
				return fmt.Errorf("failed to copy progress after %d record(s): %w", copied, err)
			}
			slog.Default().Info("migrated progress", "from", from, "to", to, "records", copied)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %d record(s) from %s to %s\n", copied, from, to)
			return nil
		},
	}

	command.Flags().StringVar(&from, "from", config.ProgressBackendFile, "Backend to copy from. Options: file, database, redis")
	return command
}
