package logger

import (
	"log/slog"
	"os"
)

// New creates the JSON logger handed out through the fx graph. Every line
// carries the service attribute so storefront output can be told apart in
// aggregated streams.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "storefront"))
}
