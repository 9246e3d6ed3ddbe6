package middleware

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined in this package,
// preventing collisions with keys from other packages.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	memberIDKey     = contextKey("memberID")
	capabilitiesKey = contextKey("capabilities")
)

// GetLoggerFromCtx retrieves the request-scoped logger from the context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// GetMemberIDFromCtx retrieves the authenticated member ID from the context.
func GetMemberIDFromCtx(ctx context.Context) (string, bool) {
	memberID, ok := ctx.Value(memberIDKey).(string)
	return memberID, ok && memberID != ""
}

// GetCapabilitiesFromCtx retrieves the caller's capability strings from the
// context.
func GetCapabilitiesFromCtx(ctx context.Context) []string {
	caps, ok := ctx.Value(capabilitiesKey).([]string)
	if !ok {
		return nil
	}
	return caps
}
