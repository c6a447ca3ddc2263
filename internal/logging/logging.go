// Package logging configures the process-wide logrus logger.
//
// The TUI owns the terminal, so log output goes to a file. Warnings and
// errors can additionally be forwarded to the media host through a Hook.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/config"
)

// SkipRemote marks an entry that must not be forwarded to the host.
// Entries produced while talking to the host carry it.
const SkipRemote = "skip_remote"

// Setup directs the standard logger to the configured file and applies
// the formatter and level. The returned closer releases the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	Configure(logrus.StandardLogger(), f, cfg)
	return f, nil
}

// Configure applies output, formatter and level to logger.
func Configure(logger *logrus.Logger, out io.Writer, cfg config.LogConfig) {
	logger.SetOutput(out)

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
