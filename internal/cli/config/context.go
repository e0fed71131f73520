// Package config carries CLI state through the cobra command context.
package config

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapedit/internal/config"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// flagsKey is used to store the loaded flags in context.
type flagsKey struct{}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithFlags stores the loaded flags in ctx.
func WithFlags(ctx context.Context, f config.Flags) context.Context {
	return context.WithValue(ctx, flagsKey{}, f)
}

// GetFlags retrieves the flags stored by WithFlags.
func GetFlags(ctx context.Context) (config.Flags, bool) {
	if ctx == nil {
		return config.Flags{}, false
	}
	f, ok := ctx.Value(flagsKey{}).(config.Flags)
	return f, ok
}
