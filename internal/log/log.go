// Package log содержит общий логгер сервера.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger используется компонентами, которым логгер не передан явно.
var Logger *zap.Logger = zap.NewNop()

// Initialize создает логгер с указанным уровнем и делает его общим.
func Initialize(level string) (*zap.Logger, error) {
	const op = "initializing logger"

	lvl, err := zap.ParseAtomicLevel(level)

	if err != nil {
		return nil, errorf(op, err)
	}

	config := zap.NewProductionConfig()
	config.Level = lvl
	logger, err := config.Build()

	if err != nil {
		return nil, errorf(op, err)
	}

	Logger = logger
	return logger, nil
}

func errorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
