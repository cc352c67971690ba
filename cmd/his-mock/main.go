// Command his-mock runs the mock HIS API.
//
//	his-mock            start the HTTP server (same as "serve")
//	his-mock serve      start the HTTP server
//	his-mock fixtures   print the seeded fixture tables as JSON and exit
//
// Configuration comes from the environment (optionally a .env file); see
// internal/config for the full list of variables.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/his-mockup-api/internal/config"
	"github.com/tbourn/his-mockup-api/internal/generator"
	httpapi "github.com/tbourn/his-mockup-api/internal/http"
	"github.com/tbourn/his-mockup-api/internal/observability"
	"github.com/tbourn/his-mockup-api/internal/repo"
	"github.com/tbourn/his-mockup-api/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "his-mock",
		Short:        "Mock Hospital Information System API",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
	root.AddCommand(serveCmd())
	root.AddCommand(fixturesCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the mock API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func fixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "Seed the fixture tables if needed and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeDB, err := openFixtures(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB()
			return printFixtures(cmd.OutOrStdout(), store)
		},
	}
}

// loadConfig reads an optional .env file, then the environment, and sets up
// global logging from the result.
func loadConfig() (config.Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	sysutil.ConfigureLogger(os.Stdout, cfg.LogPretty, sysutil.FirstNonEmpty(cfg.OTEL.ServiceName, "his-mockup-api"))
	sysutil.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

// openFixtures opens the fixture database, migrates and seeds it, and loads
// the validated in-memory snapshot. The returned func closes the database.
func openFixtures(ctx context.Context, cfg config.Config) (*repo.FixtureStore, func() error, error) {
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open fixtures db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("enable db tracing: %w", err)
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if err := repo.Seed(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}
	store, err := repo.LoadFixtures(ctx, db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return store, sqlDB.Close, nil
}

func printFixtures(w io.Writer, store *repo.FixtureStore) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(store.Snapshot())
}

// newServer builds the HTTP server around a fully wired Gin engine.
func newServer(cfg config.Config, store *repo.FixtureStore) *http.Server {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, store, generator.New(store, cfg.GeneratorSeed), cfg)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return fmt.Errorf("setup otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	store, closeDB, err := openFixtures(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	log.Info().
		Int("patients", len(store.Patients())).
		Int("locations", len(store.Locations())).
		Msg("fixtures loaded")

	srv := newServer(cfg, store)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
