package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/portfolio-cms/internal/api"
	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/fallback"
	"github.com/portfolio-cms/internal/service"
	"github.com/portfolio-cms/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting portfolio server...")

	dataset, err := fallback.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load fallback content")
	}

	// Initialize database. Without one the site is served from the
	// fallback dataset and admin writes are refused.
	store, err := openStorage(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer store.Close()

	// Initialize services
	services := service.NewServices(store.repos, dataset, log)

	// Initialize authentication
	tokens := auth.NewTokenIssuer(cfg.Auth.SessionSecret, cfg.Auth.TokenTTL, nil)
	sessions := auth.NewSessionStore(cfg.Auth.SessionSecret, cfg.Auth.TokenTTL, cfg.Auth.SecureCookies)
	verifier := auth.NewCredentialVerifier(store.users, auth.AdminAccount{
		Email:    cfg.Auth.AdminEmail,
		Password: cfg.Auth.AdminPassword,
		Name:     cfg.Auth.AdminName,
	})

	// Initialize router
	router := api.NewRouter(api.Dependencies{
		Services: services,
		Gate:     auth.NewAuthenticator(tokens, sessions),
		Verifier: verifier,
		Tokens:   tokens,
		Sessions: sessions,
		Health:   store.health,
	}, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("storage", services.Article.StorageMode()).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
