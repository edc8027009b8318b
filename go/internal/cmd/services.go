package main

import (
	"context"
	"fmt"

	"github.com/mcdev12/quorum/go/internal/session"
)

type Services struct {
	Session *session.Service
	cleanup func()
}

// setupServices wires repository → app → service per the configured storage
// backend.
func setupServices(ctx context.Context, config *Config) (*Services, error) {
	var repo session.Repository
	cleanup := func() {}

	switch config.Storage.Backend {
	case "memory":
		repo = session.NewMemoryRepository()
	case "postgres":
		pool, err := setupDatabase(ctx)
		if err != nil {
			return nil, err
		}
		pgRepo := session.NewPostgresRepository(pool)
		if err := pgRepo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		repo = pgRepo
		cleanup = pool.Close
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", config.Storage.Backend)
	}

	app := session.NewApp(repo)
	return &Services{
		Session: session.NewService(app),
		cleanup: cleanup,
	}, nil
}
