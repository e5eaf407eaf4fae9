package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/vocabulary"
	"github.com/at-ishikawa/verbdrill/internal/vocabulary/gitsource"
)

func newWordsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "words",
		Short: "Manage the vocabulary",
	}
	command.AddCommand(
		newWordsAddCommand(),
		newWordsImportCommand(),
		newWordsSyncCommand(),
	)
	return command
}

func newWordsAddCommand() *cobra.Command {
	var category string
	var exampleSentence string

	command := &cobra.Command{
		Use:   "add <verb> <translation>",
		Short: "Add a word to the vocabulary",
		Args:  cobra.ExactArgs(2),
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
			entries, entry, err := vocabulary.AddWord(entries, args[0], args[1], category, exampleSentence)
			if err != nil {
				return fmt.Errorf("failed to add the word: %w", err)
			}
			if err := vocabulary.Save(path, entries); err != nil {
				return fmt.Errorf("failed to save the vocabulary: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (#%d)\n", entry.Verb, entry.ID)
			return nil
		},
	}

	command.Flags().StringVar(&category, "category", "", "Category of the word, "+vocabulary.DefaultCategory+" when empty")
	command.Flags().StringVar(&exampleSentence, "example", "", "Example sentence using the word")
	return command
}

func newWordsImportCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "import <file or url>",
		Short: "Import words from a YAML or JSON list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			reader := vocabulary.NewReader()
			defer func() {
				_ = reader.Close()
			}()
			incoming, err := reader.Read(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			path := cfg.Vocabulary.Path()
			entries, err := vocabulary.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load the vocabulary: %w", err)
			}
			entries, result := vocabulary.Import(entries, incoming)
			if len(result.Added) > 0 {
				if err := vocabulary.Save(path, entries); err != nil {
					return fmt.Errorf("failed to save the vocabulary: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Imported %d word(s), skipped %d\n", len(result.Added), len(result.Skipped))
			for _, verb := range result.Skipped {
				_, _ = fmt.Fprintf(out, "  skipped: %q\n", verb)
			}
			return nil
		},
	}
	return command
}

func newWordsSyncCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "sync",
		Short: "Clone or pull the vocabulary repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			git := cfg.Vocabulary.Git
			if git.URL == "" {
				return errors.New("vocabulary.git.url is not configured")
			}

			if err := gitsource.Sync(git.URL, git.Directory, cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to sync the vocabulary repository: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Vocabulary is up to date at %s\n", cfg.Vocabulary.Path())
			return nil
		},
	}
	return command
}
