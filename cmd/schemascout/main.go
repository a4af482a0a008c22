// Command schemascout serves the schema exploration API: it introspects
// a PostgreSQL database, builds a relationship graph over its tables,
// and answers neighborhood, path, and relevance queries over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/api"
	"github.com/schemascout/schemascout/internal/catalog"
	"github.com/schemascout/schemascout/internal/config"
	"github.com/schemascout/schemascout/internal/db"
	"github.com/schemascout/schemascout/internal/db/migrations"
	"github.com/schemascout/schemascout/internal/dbpool"
	"github.com/schemascout/schemascout/internal/graph"
	"github.com/schemascout/schemascout/internal/service"
	"github.com/schemascout/schemascout/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("invalid LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("schemascout exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	log.Info("database connected")

	// Migrations cover schemascout-owned tables only; the explored
	// schema is never modified.
	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	cat := catalog.NewPG(pool, cfg.SchemaName, log)

	g := graph.New(cat, log, graph.Options{
		DiscoverImplicit: cfg.DiscoverImplicit,
		RowCountWorkers:  cfg.RowCountWorkers,
	})
	if err := g.Build(ctx); err != nil {
		return err
	}

	graphSvc := service.NewGraphService(g, log)
	schemaSvc := service.NewSchemaService(cat, log)
	querySvc := service.NewQueryService(cat, log)
	mappingSvc := service.NewMappingService(store.NewMappingStore(store.Base{Pool: pool, Log: log}), log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Graph:       graphSvc,
		Schema:      schemaSvc,
		Queries:     querySvc,
		Mappings:    mappingSvc,
		CORSOrigins: cfg.CORSOrigins,
		Version:     version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")

		return err
	}

	log.Info("server stopped")

	return nil
}
