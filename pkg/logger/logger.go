package logger

import (
	"log/slog"
	"os"
)

// Log is ready at package load with info level; Init reconfigures it from
// the LOG_LEVEL setting during startup.
var Log = newLogger(slog.LevelInfo)

func Init(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	Log = newLogger(lvl)
}

func newLogger(lvl slog.Level) *slog.Logger {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
