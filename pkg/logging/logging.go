// Package logging configures the logrus logger used across millertug.
//
// The terminal is owned by the renderer while the browser runs, so log
// output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var osOpenFile = os.OpenFile
var osMkdirAll = os.MkdirAll

// Options selects where and how much to log.
type Options struct {
	FilePath string
	Level    string
}

// New returns a logger writing to opts.FilePath and a function that closes the file.
// An empty FilePath discards all output.
func New(opts Options) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	levelStr := strings.TrimSpace(opts.Level)
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	logger.SetLevel(level)

	if opts.FilePath == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	if err = osMkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := osOpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, func() {
		_ = f.Close()
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
