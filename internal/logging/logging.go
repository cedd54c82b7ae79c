// Package logging builds the *slog.Logger shared by the client packages.
//
// Text output goes through charmbracelet/log so it matches the rest of the
// terminal styling; json output uses the standard slog JSON handler.
// Components accept a *slog.Logger and fall back to Nop when given none.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Level represents a log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format represents the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	Level  Level
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix is shown in front of text lines.
	Prefix string
}

// DefaultConfig keeps the CLI quiet unless something goes wrong.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
		Prefix: "todolist",
	}
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: cfg.Level}))
	}

	h := charmlog.NewWithOptions(cfg.Output, charmlog.Options{
		Level:           toCharmLevel(cfg.Level),
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: cfg.Level <= LevelDebug,
		Prefix:          cfg.Prefix,
	})
	return slog.New(h)
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses a level name case-insensitively; unknown values map to
// LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat parses a format name; anything but json is text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

func toCharmLevel(l Level) charmlog.Level {
	switch {
	case l <= LevelDebug:
		return charmlog.DebugLevel
	case l <= LevelInfo:
		return charmlog.InfoLevel
	case l <= LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}
