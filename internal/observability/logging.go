// Package observability provides the shared zap logger.
package observability

import (
	"github.com/printhauslabs/printhaus/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
