// Package logging builds the slog loggers used by every frametile command.
// Records are rendered by charmbracelet/log.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Leveled is a logger whose level can change after construction, as on a
// config reload.
type Leveled struct {
	*slog.Logger
	handler *log.Logger
}

// NewLeveled returns a logger writing to w at the named level ("debug",
// "info", "warn"/"warning" or "error"). Unknown levels fall back to info.
func NewLeveled(w io.Writer, level string, prefix string) *Leveled {
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           ParseLevel(level),
		Prefix:          prefix,
	})
	return &Leveled{Logger: slog.New(handler), handler: handler}
}

// SetLevel changes the minimum level of records written.
func (l *Leveled) SetLevel(level string) {
	l.handler.SetLevel(ParseLevel(level))
}

// New is NewLeveled without the level control.
func New(w io.Writer, level string, prefix string) *slog.Logger {
	return NewLeveled(w, level, prefix).Logger
}

// ParseLevel maps a config log level to a charmbracelet/log level.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
