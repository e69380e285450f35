// Package logger настраивает zap для CLI и фоновых прогонов.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap оборачивает *zap.Logger, чтобы компоненты получали один и тот же экземпляр.
type Zap struct {
	*zap.Logger
}

// New создает логгер: в dev консольный цветной вывод, иначе JSON.
func New(env, level string) (*Zap, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неверный LOG_LEVEL %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "dev" || env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Zap{Logger: l}, nil
}

// Nop возвращает логгер, который ничего не пишет. Используется в тестах.
func Nop() *Zap {
	return &Zap{Logger: zap.NewNop()}
}
