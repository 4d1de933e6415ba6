package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"movieapi/internal/config"
	"movieapi/internal/logger"
	"movieapi/internal/lookup"
	"movieapi/internal/movie"
	"movieapi/internal/platform/omdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		logrus.Fatalf("setup logging: %v", err)
	}

	client, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL,
		omdb.WithTimeout(cfg.OMDb.Timeout),
		omdb.WithDefaultSearch(cfg.OMDb.DefaultSearch),
	)
	if err != nil {
		logrus.Fatalf("create omdb client: %v", err)
	}

	deps := dependencies{}
	recorder := lookup.Discard
	if cfg.DatabaseDSN != "" {
		dbPool := mustOpenDB(cfg.DatabaseDSN)
		defer dbPool.Close()

		lookupService := lookup.NewService(lookup.NewPostgresRepo(dbPool))
		recorder = lookupService
		deps.lookups = lookup.NewHTTPHandler(lookupService)
		deps.db = dbPool
	} else {
		logrus.Info("DB_DSN not set, lookup audit disabled")
	}
	deps.movies = movie.NewHTTPHandler(client, recorder)

	handler, stop := newRouter(cfg, deps)
	defer stop()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.OMDb.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.Addr).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		logrus.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("graceful shutdown failed")
		}
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logrus.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logrus.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	logrus.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
