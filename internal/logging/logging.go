// Package logging builds the structured loggers used by the zeckit CLI.
//
// Library packages never log on their own: they accept an *slog.Logger
// through an option and stay silent otherwise. The CLI constructs one
// logger here from its --log-level and --log-format flags and hands it
// down.
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug})
//	logger.Info("scan started", "max_t", 250)
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug traces individual scan events such as sieve promotions.
	LevelDebug Level = iota
	// LevelInfo reports run start and completion.
	LevelInfo
	// LevelWarn reports recoverable problems such as a canceled scan.
	LevelWarn
	// LevelError reports failed operations.
	LevelError
)

// ErrUnknownLevel is returned by ParseLevel for an unrecognised name.
var ErrUnknownLevel = errors.New("logging: unknown level")

// ErrUnknownFormat is returned by ParseFormat for an unrecognised name.
var ErrUnknownFormat = errors.New("logging: unknown format")

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a case-insensitive name ("debug", "info", "warn" or
// "warning", "error") to its Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// ParseFormat reports whether name selects JSON output ("json") or text
// ("text" or empty).
func ParseFormat(name string) (json bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return true, nil
	case "text", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures New. The zero value logs Info and above as text to
// stderr.
type Config struct {
	// Level sets the minimum level; lower messages are discarded.
	Level Level

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// Service, when set, is attached to every record as "service".
	Service string

	// Writer receives the output. Default: os.Stderr.
	Writer io.Writer
}

// =============================================================================
// Construction
// =============================================================================

// New returns an *slog.Logger for cfg.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
