package main

import (
	"os"

	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

func main() {
	logger := logging.New(logging.LevelInfo, logging.FormatConsole).Named("migration")
	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
