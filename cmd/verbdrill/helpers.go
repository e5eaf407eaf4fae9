package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/drill"
	"github.com/at-ishikawa/verbdrill/internal/session"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openDrill builds the engine on the configured progress backend.
// The returned function closes the progress store.
func openDrill(ctx context.Context, cfg *config.Config) (*drill.Drill, func() error, error) {
	store, closeStore, err := drill.OpenStore(ctx, cfg, cfg.Progress.Backend)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open the progress store: %w", err)
	}
	d, err := drill.Load(ctx, cfg, store, session.SystemClock)
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("failed to load the drill: %w", err)
	}
	return d, closeStore, nil
}
