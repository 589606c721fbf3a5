package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/repository"
)

// storage is what the server needs from the database. A zero storage means
// no database is configured and content is served from the fallback dataset.
type storage struct {
	db     *database.DB
	repos  *repository.Repositories
	users  repository.UserRepository
	health func(ctx context.Context) error
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// openStorage connects to DATABASE_URL when it is set. Repositories are
// built even when the server is unreachable so reads and writes resume as
// soon as it comes back; until then public reads fall back per request and
// admin writes fail per request. Migrations only run against a reachable
// server.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if !cfg.Database.Enabled() {
		log.Warn().Msg("DATABASE_URL not set, serving fallback content")
		return &storage{}, nil
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, err
	}

	s := &storage{
		db:     db,
		repos:  repository.New(db),
		health: db.HealthCheck,
	}
	s.users = s.repos.User

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(pingCtx); err != nil {
		log.Warn().Err(err).Msg("Database unreachable at startup, skipping migrations and admin check")
		return s, nil
	}

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, err
		}
	}

	warnIfNoAdmin(pingCtx, s.users, cfg.Auth.AdminPassword != "", log)
	return s, nil
}

// warnIfNoAdmin logs when nobody could sign in to the admin API. It reports
// whether the warning was logged.
func warnIfNoAdmin(ctx context.Context, users repository.UserRepository, envAdmin bool, log zerolog.Logger) bool {
	if envAdmin {
		return false
	}

	n, err := users.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count admin users")
		return false
	}
	if n > 0 {
		return false
	}

	log.Warn().Msg("No admin account: run cmd/seed or set ADMIN_PASSWORD")
	return true
}
