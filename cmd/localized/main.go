package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-localize/internal/auth"
	"github.com/goliatone/go-localize/internal/catalog"
	localizehttp "github.com/goliatone/go-localize/internal/http"
	"github.com/goliatone/go-localize/internal/importer"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/internal/runtimeconfig"
	"github.com/goliatone/go-localize/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "localized: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; the environment always wins.
	_ = godotenv.Load()

	cfg, err := runtimeconfig.FromEnv()
	if err != nil {
		return err
	}

	root, err := logging.NewProvider(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return err
	}
	logger := logging.ModuleLogger(root, "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.EnsureSchema(ctx, db); err != nil {
		return err
	}
	if err := storage.SeedLanguages(ctx, db, cfg.LanguageSeed()); err != nil {
		return err
	}

	verifier, err := auth.NewJWTVerifier([]byte(cfg.Auth.Secret), auth.WithIssuer(cfg.Auth.Issuer))
	if err != nil {
		return err
	}

	repo := catalog.NewBunRepository(db)
	catalogSvc := catalog.NewService(repo, catalog.WithLogger(logging.CatalogLogger(root)))
	bulkImporter := importer.New(catalogSvc, importer.WithLogger(logging.ImporterLogger(root)))

	api := localizehttp.NewAPI(
		localizehttp.WithCatalogService(catalogSvc),
		localizehttp.WithImporter(bulkImporter),
		localizehttp.WithVerifier(verifier),
		localizehttp.WithLogger(logging.HTTPLogger(root)),
		localizehttp.WithCORS(localizehttp.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowCredentials: cfg.CORS.AllowCredentials,
		}),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr, "driver", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
