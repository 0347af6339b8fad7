package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sirupsen/logrus"

	"github.com/bigbrain-live/bigbrain/internal/auth"
	"github.com/bigbrain-live/bigbrain/internal/engine"
	"github.com/bigbrain-live/bigbrain/internal/handlers"
	"github.com/bigbrain-live/bigbrain/internal/middleware"
	"github.com/bigbrain-live/bigbrain/internal/persist"
	"github.com/bigbrain-live/bigbrain/internal/ws"
)

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// newSink selects the snapshot backend from PERSIST_BACKEND: "file"
// (default), "redis", "postgres", or "none".
func newSink(ctx context.Context, logger *logrus.Logger) (persist.Sink, error) {
	backend := getEnv("PERSIST_BACKEND", "file")
	switch backend {
	case "file":
		path := getEnv("DATABASE_FILE", "./database.json")
		logger.WithField("path", path).Info("persisting snapshots to file")
		return persist.NewFileSink(path), nil
	case "redis":
		logger.Info("persisting snapshots to redis")
		return persist.NewRedisSink(ctx)
	case "postgres":
		logger.Info("persisting snapshots to postgres")
		return persist.NewPostgresSink(ctx)
	case "none":
		logger.Warn("snapshot persistence disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown PERSIST_BACKEND %q", backend)
	}
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	if err := auth.Init(); err != nil {
		logger.Fatalf("init auth keys: %v", err)
	}

	ctx := context.Background()
	sink, err := newSink(ctx, logger)
	if err != nil {
		logger.Fatalf("init persistence: %v", err)
	}

	store := engine.NewStore()
	eng := engine.NewEngine(store, sink, logger)

	if sink != nil {
		snap, err := sink.Load(ctx)
		switch {
		case errors.Is(err, persist.ErrNoSnapshot):
			logger.Warn("no snapshot found, starting with an empty store")
			if err := eng.Save(ctx); err != nil {
				logger.Fatalf("write initial snapshot: %v", err)
			}
		case err != nil:
			logger.Fatalf("load snapshot: %v", err)
		default:
			eng.Restore(snap)
			logger.Info("restored store from snapshot")
		}
	}

	hub := ws.NewHub(logger)
	srv := handlers.New(eng, hub, logger)

	server := &http.Server{
		Handler:      middleware.Logging(logger)(srv.Routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	l, err := net.Listen("tcp", ":"+getEnv("PORT", "5005"))
	if err != nil {
		logger.Fatalf("failed to listen: %v", err)
	}
	logger.Infof("listening on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	if sink != nil {
		if err := eng.Save(shutdownCtx); err != nil {
			logger.Errorf("final snapshot failed: %v", err)
		}
		_ = sink.Close()
	}
}
