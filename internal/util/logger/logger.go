package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

// GetLogger returns the process-wide logger. Records go to stdout and,
// once Sentry is initialized, error records are also reported there.
func GetLogger() *slog.Logger {
	once.Do(func() {
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})

		loggerInstance = slog.New(NewMultiHandler(textHandler, NewSentryHandler()))
	})

	return loggerInstance
}
