// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Supported output formats.
const (
	Auto = "auto"
	JSON = "json"
	Text = "text"
)

// Initialize installs the default slog logger. Format "auto" picks a
// colored terminal handler when stderr is a TTY and plain text
// otherwise, so piped output stays machine-readable.
func Initialize(format, levelName string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("could not parse log level: %w", err)
	}

	opts := slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(os.Stderr, &opts)
	case Text:
		handler = slog.NewTextHandler(os.Stderr, &opts)
	case Auto:
		if isatty.IsTerminal(os.Stderr.Fd()) {
			handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
		} else {
			handler = slog.NewTextHandler(os.Stderr, &opts)
		}
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
