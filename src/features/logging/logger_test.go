package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/contre95/soulkeep/src/features/config"
)

func managerWithLogger(lc config.Logger) *config.Manager {
	return config.NewManager(&config.Config{Logger: lc})
}

func TestSetupLoggerHonorsEnabled(t *testing.T) {
	logger := SetupLogger(managerWithLogger(config.Logger{Enabled: false, Level: "debug"}))
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("disabled logger must not emit even at error level")
	}

	logger = SetupLogger(managerWithLogger(config.Logger{Enabled: true, Level: "info"}))
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("enabled logger must emit at its configured level")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("info level must filter out debug")
	}
}
