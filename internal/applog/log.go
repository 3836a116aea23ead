package applog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Handler is the [slog.Handler] returned by this package's constructors.
type Handler = slog.Handler

// Level is a log severity, parsed from a CLI flag string.
type Level string

const (
	// LevelError logs only errors.
	LevelError Level = "error"
	// LevelWarn logs warnings and errors.
	LevelWarn Level = "warn"
	// LevelInfo logs informational messages and above.
	LevelInfo Level = "info"
	// LevelDebug logs everything, including debug messages.
	LevelDebug Level = "debug"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs as key=value pairs with source locations.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs terse human-readable lines, the default for
	// interactive use.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandlerFromStrings parses logLevel and logFormat and builds a [Handler].
func NewHandlerFromStrings(w io.Writer, logLevel, logFormat string) (Handler, error) {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtt, err := ParseFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmtt), nil
}

// NewHandler creates a [Handler] writing to w at the given level and format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	opts := &slog.HandlerOptions{Level: level.slogLevel()}

	switch format {
	case FormatJSON:
		opts.AddSource = true

		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt:
		opts.AddSource = true

		return slog.NewTextHandler(w, opts)
	case FormatText:
		return slog.NewTextHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// slogLevel converts a Level to its [slog.Level] equivalent. Unknown levels
// map to [slog.LevelInfo].
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	}

	return slog.LevelInfo
}

// ParseLevel parses a log level string, case-insensitively. "warning" is
// accepted as an alias for "warn".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if slices.Contains(GetAllFormats(), logFmt) {
		return logFmt, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllFormats returns every supported [Format].
func GetAllFormats() []Format {
	return []Format{FormatJSON, FormatLogfmt, FormatText}
}

// GetAllLevelStrings returns every supported level, as strings, for flag help
// text and shell completion.
func GetAllLevelStrings() []string {
	return []string{string(LevelError), string(LevelWarn), string(LevelInfo), string(LevelDebug)}
}

// GetAllFormatStrings returns every supported format, as strings, for flag
// help text and shell completion.
func GetAllFormatStrings() []string {
	formats := GetAllFormats()
	out := make([]string, len(formats))

	for i, f := range formats {
		out[i] = string(f)
	}

	return out
}
