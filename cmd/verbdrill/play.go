package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/cli"
)

func newPlayCommand() *cobra.Command {
	var selection SelectionFlag
	var seed uint64

	command := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive drill",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if selection != "" {
				cfg.Drill.Selection = string(selection)
			}
			if cmd.Flags().Changed("seed") {
				cfg.Drill.Seed = seed
			}

			ctx := cmd.Context()
			d, closeStore, err := openDrill(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			drillCLI := cli.NewDrillCLI(d.Engine, d.VocabularyPath, d.Entries, cmd.InOrStdin(), cmd.OutOrStdout())
			return drillCLI.Run(ctx, drillCLI)
		},
	}

	command.Flags().Var(&selection, "selection", "Card selection policy. Options: uniform, weighted")
	command.Flags().Uint64Var(&seed, "seed", 0, "Seed of the random source, 0 for a random seed")
	return command
}
