package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root logger for the given environment.
// Local runs log text to stdout at debug level; dev and prod log JSON
// to a file in logDir, duplicated to stdout.
func SetupLogger(env, logDir string) *slog.Logger {
	switch env {
	case envDev, envProd:
		level := slog.LevelInfo
		if env == envDev {
			level = slog.LevelDebug
		}

		out := io.Writer(os.Stdout)
		logPath := filepath.Join(logDir, "tebogen.log")
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = io.MultiWriter(os.Stdout, file)
		}

		log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
		if err != nil {
			log.Warn("failed to open log file, logging to stdout only", slog.String("path", logPath))
		}
		return log
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
