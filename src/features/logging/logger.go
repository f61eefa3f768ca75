package logging

import (
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/contre95/soulkeep/src/features/config"
)

func SetupLogger(cfg *config.Manager) *slog.Logger {
	var formatter log.Formatter
	switch cfg.Get().Logger.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	level := log.InfoLevel
	switch cfg.Get().Logger.Level {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}
	if !cfg.Get().Logger.Enabled {
		// Above every defined level; nothing gets through.
		level = log.Level(math.MaxInt32)
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "Soulkeep",
		Formatter:       formatter,
		Level:           level,
	})

	return slog.New(handler)
}
