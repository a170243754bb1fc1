// Package logging sets up slog for the chordtrainer commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gigurra/chordtrainer/cmd/common/config"
)

// LogPath returns the path to the log file (~/.chordtrainer/chordtrainer.log).
func LogPath() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "chordtrainer.log")
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// SetupFile makes slog write to the log file only. Used by the terminal UI,
// which owns stdout and stderr while it runs. The returned func closes the file.
func SetupFile(level slog.Level) (func(), error) {
	logPath := LogPath()
	if logPath == "" {
		return func() {}, fmt.Errorf("no home directory for the log file")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return func() {}, err
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return func() {}, err
	}

	setup(logFile, level)
	return func() { _ = logFile.Close() }, nil
}

// SetupStderr makes slog write to stderr, for the plain commands.
func SetupStderr(level slog.Level) {
	setup(os.Stderr, level)
}

func setup(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
