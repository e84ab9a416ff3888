package factory

import (
	"context"
	"time"

	"go.uber.org/zap"

	conf "github.com/nestjam/yap-sequencer/internal/config"
	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/log"
	f "github.com/nestjam/yap-sequencer/internal/persistance/file"
	"github.com/nestjam/yap-sequencer/internal/persistance/inmemory"
	"github.com/nestjam/yap-sequencer/internal/persistance/pgsql"
)

const (
	eventKey        = "event"
	fileLockTimeout = 5 * time.Second
)

// NewStorage выбирает хранилище по конфигурации: БД, файл или память.
func NewStorage(ctx context.Context, conf conf.Config, logger *zap.Logger) (domain.SequenceStore, func()) {
	if conf.DataSourceName != "" {
		logger.Info("Using sql storage")
		store := pgsql.New(conf.DataSourceName)
		err := store.Init(ctx)

		if err != nil {
			logger.Fatal("Failed to initialize store", zap.Error(err))
		}

		return store, func() { store.Close() }
	}

	if conf.FileStoragePath != "" {
		logger.Info("Using file storage", zap.String("path", conf.FileStoragePath))
		return newFileStorage(ctx, conf, logger)
	}

	logger.Info("Using in-memory storage")
	return inmemory.New(), func() {}
}

func newFileStorage(ctx context.Context, conf conf.Config, logger *zap.Logger) (domain.SequenceStore, func()) {
	ctx, cancel := context.WithTimeout(ctx, fileLockTimeout)
	defer cancel()

	store, err := f.Open(ctx, conf.FileStoragePath)
	if err != nil {
		logger.Fatal(err.Error(), zap.String(eventKey, "open file storage"))
	}

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error(err.Error(), zap.String(eventKey, "close file storage"))
		}
	}
}

// NewLogger создает логгер с указанным уровнем.
func NewLogger(level string) (*zap.Logger, func()) {
	logger, err := log.Initialize(level)

	if err != nil {
		panic(err)
	}

	return logger, func() { _ = logger.Sync() }
}
