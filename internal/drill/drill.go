// Package drill wires configuration, vocabulary and progress storage into a session engine.
package drill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/database"
	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/progress"
	"github.com/at-ishikawa/verbdrill/internal/random"
	"github.com/at-ishikawa/verbdrill/internal/scheduler"
	"github.com/at-ishikawa/verbdrill/internal/session"
	"github.com/at-ishikawa/verbdrill/internal/vocabulary"
)

func noopClose() error {
	return nil
}

// OpenStore opens the progress store of backend, one of the config.ProgressBackend values.
// The returned function releases the underlying connection.
func OpenStore(ctx context.Context, cfg *config.Config, backend string) (progress.Store, func() error, error) {
	switch backend {
	case config.ProgressBackendFile:
		return progress.NewFileStore(cfg.Progress.File), noopClose, nil
	case config.ProgressBackendDatabase:
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Connect() > %w", err)
		}
		return progress.NewDatabaseStore(db), db.Close, nil
	case config.ProgressBackendRedis:
		client, err := database.OpenRedis(ctx, cfg.Progress.Redis, cfg.Database.ConnectAttempts)
		if err != nil {
			return nil, nil, fmt.Errorf("database.OpenRedis() > %w", err)
		}
		return progress.NewRedisStore(client, cfg.Progress.Redis.Key), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown progress backend %q", backend)
}

// Drill is a ready to play engine with the vocabulary it was built from.
type Drill struct {
	Engine         *session.Engine
	Entries        []vocabulary.Entry
	VocabularyPath string
}

// Load reads the vocabulary and the stored progress and builds the engine.
func Load(ctx context.Context, cfg *config.Config, store progress.Store, clock session.Clock) (*Drill, error) {
	policy, err := scheduler.ParsePolicy(cfg.Drill.Selection)
	if err != nil {
		return nil, fmt.Errorf("scheduler.ParsePolicy() > %w", err)
	}

	path := cfg.Vocabulary.Path()
	entries, err := vocabulary.Load(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Load() > %w", err)
	}
	blob, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Load() > %w", err)
	}

	d := deck.Hydrate(entries, blob)
	slog.Default().Debug("hydrated deck", "vocabulary", path, "cards", d.Len(), "records", len(blob))

	rng := random.New(cfg.Drill.Seed)
	return &Drill{
		Engine:         session.NewEngine(d, store, scheduler.New(policy, rng), rng, clock),
		Entries:        entries,
		VocabularyPath: path,
	}, nil
}
