// Package obslog wraps zap with the request-scoped fields the HTTP server
// attaches to its log lines: request id and expression.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
type Config struct {
	// Development enables human-readable console output instead of JSON.
	Development bool
	// Level is the minimum level emitted: "debug", "info", "warn", "error".
	Level string
}

// New builds a *zap.Logger from cfg. An unrecognized Level falls back to info.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		_ = level.UnmarshalText([]byte(cfg.Level))
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// WithRequest returns a child logger annotated with a request id.
func WithRequest(base *zap.Logger, requestID string) *zap.Logger {
	return base.With(zap.String("request_id", requestID))
}

// WithExpression returns a child logger annotated with the expression under
// validation, truncated defensively since expressions are user input.
func WithExpression(base *zap.Logger, expression string) *zap.Logger {
	const maxLogged = 256
	if len(expression) > maxLogged {
		expression = expression[:maxLogged] + "…"
	}
	return base.With(zap.String("expression", expression))
}
