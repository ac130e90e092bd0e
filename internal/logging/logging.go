// Package logging builds the application's zap logger. Logs go to a file by
// default so they never interleave with the terminal UI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Special values for Config.File.
const (
	FileStderr = "stderr"
	FileOff    = "off"
)

// Config selects the level and destination.
type Config struct {
	Level string // debug, info, warn, error; empty means info
	File  string // path, FileStderr, FileOff; empty means DefaultLogPath
}

// New builds a JSON production logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	if strings.EqualFold(cfg.File, FileOff) {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	out := cfg.File
	switch {
	case strings.EqualFold(out, FileStderr):
		out = "stderr"
	case out == "":
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		out = p
	default:
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{out}
	config.ErrorOutputPaths = []string{out}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// DefaultLogPath resolves $XDG_STATE_HOME/circlet/circlet.log, falling back
// to ~/.local/state, and creates the directory.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "circlet")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return filepath.Join(dir, "circlet.log"), nil
}
