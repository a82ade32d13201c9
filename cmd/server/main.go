package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/config"
	"github.com/hongminglow/civic-tracker/internal/logger"
	"github.com/hongminglow/civic-tracker/internal/server"
	"github.com/hongminglow/civic-tracker/internal/storage"
	"github.com/hongminglow/civic-tracker/internal/storage/file"
	"github.com/hongminglow/civic-tracker/internal/storage/memory"
	"github.com/hongminglow/civic-tracker/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	kv, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal("init storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeStore()

	srv, err := server.New(cfg, kv, log)
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	go func() {
		log.Info("civic tracker listening",
			zap.String("addr", cfg.HTTPAddress()),
			zap.String("storage", cfg.StorageDriver),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("graceful shutdown error", zap.Error(err))
	}
}

func openStorage(ctx context.Context, cfg config.Config) (storage.KV, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageFile:
		store, err := file.NewStore(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}
