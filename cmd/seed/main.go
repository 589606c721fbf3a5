// Command seed prepares a database for the portfolio server: it applies
// migrations, creates or updates the admin account and optionally imports
// the built-in content.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/fallback"
	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/repository"
	"github.com/portfolio-cms/pkg/logger"
)

type options struct {
	email    string
	password string
	name     string
	content  bool
}

func main() {
	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	var opts options
	down := flag.Bool("down", false, "roll back the last migration and exit")
	flag.StringVar(&opts.email, "email", cfg.Auth.AdminEmail, "admin email")
	flag.StringVar(&opts.password, "password", cfg.Auth.AdminPassword, "admin password (min 6 characters)")
	flag.StringVar(&opts.name, "name", cfg.Auth.AdminName, "admin display name")
	flag.BoolVar(&opts.content, "content", false, "import the built-in articles and projects")
	flag.Parse()

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *down {
		if err := db.MigrateDown(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		return
	}

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, repository.New(db), fallback.MustLoad(), opts, log); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Msg("Seeding completed")
}

// run creates the admin account and, when requested, imports content whose
// slug is not taken yet.
func run(ctx context.Context, repos *repository.Repositories, dataset *fallback.Dataset, opts options, log zerolog.Logger) error {
	if len(opts.password) < 6 {
		return errors.New("admin password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(opts.password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           auth.AdminID(opts.email),
		Email:        opts.email,
		Name:         opts.name,
		PasswordHash: hash,
	}
	if err := repos.User.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Admin user ready")

	if !opts.content {
		return nil
	}

	articles, err := importContent(ctx, repos.Article, dataset.Articles(), user.ID)
	if err != nil {
		return err
	}
	projects, err := importContent(ctx, repos.Project, dataset.Projects(), user.ID)
	if err != nil {
		return err
	}

	log.Info().Int("articles", articles).Int("projects", projects).Msg("Content imported")
	return nil
}

func importContent[E models.Entity](ctx context.Context, repo repository.ContentRepository[E], items []E, authorID string) (int, error) {
	imported := 0
	for _, item := range items {
		taken, err := repo.SlugExists(ctx, item.URLSlug(), "")
		if err != nil {
			return imported, fmt.Errorf("failed to check slug %s: %w", item.URLSlug(), err)
		}
		if taken {
			continue
		}

		item.Meta().AuthorID = authorID
		if err := repo.Create(ctx, item); err != nil {
			return imported, fmt.Errorf("failed to import %s: %w", item.URLSlug(), err)
		}
		imported++
	}
	return imported, nil
}
