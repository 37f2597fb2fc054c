package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/api"
	"github.com/samhotchkiss/sindicato-comms/internal/automigrate"
	"github.com/samhotchkiss/sindicato-comms/internal/config"
	"github.com/samhotchkiss/sindicato-comms/internal/generation"
	"github.com/samhotchkiss/sindicato-comms/internal/render"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
	"github.com/samhotchkiss/sindicato-comms/internal/ws"
	"github.com/samhotchkiss/sindicato-comms/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("📣 Sindicato Comms starting on port %s (%s)", cfg.Port, cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// app is the wired server: the store, its subscribers and the router.
type app struct {
	Handler http.Handler
	Store   *store.Store

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{Store: store.New(cfg.ActingSecretariat)}

	journaled := false
	if cfg.DatabaseURL != "" {
		db, err := openJournalDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })

		detach, err := store.Bootstrap(ctx, a.Store, store.NewPostgresJournal(db), cfg.SeedDemoData)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to restore dashboard state: %w", err)
		}
		a.closers = append(a.closers, detach)
		journaled = true
		log.Printf("✅ Journal attached (revision %d)", a.Store.Version())
	} else {
		log.Printf("warning: DATABASE_URL not set; dashboard state is kept in memory only")
		if cfg.SeedDemoData {
			store.Seed(a.Store)
		}
	}

	var model generation.Model
	if cfg.GenerationEnabled() {
		gemini, err := generation.NewGeminiModel(ctx, cfg.Generation.APIKey, cfg.Generation.Model)
		if err != nil {
			log.Printf("warning: generation disabled: %v", err)
		} else {
			model = gemini
			log.Printf("✅ Generation enabled (model %s)", gemini.Name())
		}
	} else {
		log.Printf("warning: GEMINI_API_KEY not set; generation answers with a configuration notice")
	}

	hub := ws.NewHub()
	go hub.Run()
	a.closers = append(a.closers, hub.Stop)
	a.closers = append(a.closers, ws.PublishStoreEvents(hub, a.Store))

	a.Handler = api.NewRouter(api.Dependencies{
		Store:          a.Store,
		Generation:     generation.NewService(model),
		Tracker:        generation.NewTracker(),
		Renderer:       render.NewRenderer(),
		Hub:            hub,
		ShareSiteURL:   cfg.ShareSiteURL,
		AllowedOrigins: cfg.WSAllowedOrigins,
		Journaled:      journaled,
	})
	return a, nil
}

func openJournalDB(databaseURL string) (*sql.DB, error) {
	db, err := store.OpenPostgres(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := automigrate.Run(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
