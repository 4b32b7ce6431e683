package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/merwanroudane/plott/adapters/postgres"
	"github.com/merwanroudane/plott/internal"
	"github.com/merwanroudane/plott/internal/config"
	"github.com/merwanroudane/plott/internal/errors"
	"github.com/merwanroudane/plott/ports"
	"github.com/merwanroudane/plott/ui"
)

// initLedger connects the optional upload ledger. Returns a nil ledger when
// no DATABASE_URL is configured; the app then runs fully in-memory.
func initLedger(ctx context.Context, cfg *config.Config) (ports.UploadLedger, *sqlx.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil, nil
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewUploadLedger(db), db, nil
}

func main() {
	logger := internal.DefaultLogger

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger, db, err := initLedger(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize upload ledger: %v", err)
	}
	if db != nil {
		defer db.Close()
		logger.Info("upload ledger enabled")
	}

	app, err := ui.NewApp(cfg, ledger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: app.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server stopped")
}
