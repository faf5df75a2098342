// Package humanlog is a line-oriented slog handler for log files written
// while the terminal UI owns the screen.
package humanlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// DefaultTimeFormat is used when Options.TimeFormat is empty.
const DefaultTimeFormat = "2006-01-02 15:04:05.000"

// Options configures a Handler.
type Options struct {
	Level        slog.Leveler
	TimeFormat   string
	DisableColor bool
}

// Handler writes records as
//
//	[TIME] LEVEL Message [key=value ...]
type Handler struct {
	w      io.Writer
	opts   Options
	mu     *sync.Mutex
	attrs  []string
	prefix string
}

// NewHandler returns a handler writing to w. A nil opts logs Info and
// above with color.
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	if h.opts.TimeFormat == "" {
		h.opts.TimeFormat = DefaultTimeFormat
	}
	return h
}

// OpenFile appends to the log file at path, creating it and its directory
// if needed. Color is always off. Close the returned file when done.
func OpenFile(path string, level slog.Leveler) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := NewHandler(f, &Options{Level: level, DisableColor: true})
	return slog.New(handler), f, nil
}

// Enabled reports whether level is at or above the configured level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle writes one line for r.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(r.Time.Format(h.opts.TimeFormat))
	sb.WriteString("] ")
	sb.WriteString(h.level(r.Level))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	attrs := append([]string{}, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		if s := formatAttr(h.prefix, attr); s != "" {
			attrs = append(attrs, s)
		}
		return true
	})
	if len(attrs) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(attrs, " "))
		sb.WriteString("]")
	}
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]string{}, h.attrs...)
	for _, attr := range attrs {
		if s := formatAttr(h.prefix, attr); s != "" {
			h2.attrs = append(h2.attrs, s)
		}
	}
	return &h2
}

// WithGroup returns a handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *Handler) level(level slog.Level) string {
	var label, color string
	switch {
	case level >= slog.LevelError:
		label, color = "ERROR", colorRed
	case level >= slog.LevelWarn:
		label, color = "WARN ", colorYellow
	case level >= slog.LevelInfo:
		label, color = "INFO ", colorBlue
	default:
		label, color = "DEBUG", colorGray
	}
	if h.opts.DisableColor {
		return label
	}
	return color + label + colorReset
}

func formatAttr(prefix string, attr slog.Attr) string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return ""
	}
	key := prefix + attr.Key
	val := attr.Value

	switch val.Kind() {
	case slog.KindGroup:
		var parts []string
		for _, a := range val.Group() {
			if s := formatAttr(key+".", a); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case slog.KindString:
		if s := val.String(); needsQuoting(s) {
			return fmt.Sprintf("%s=%q", key, s)
		}
		return key + "=" + val.String()
	case slog.KindTime:
		return key + "=" + val.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := val.Any().(error); ok {
			return fmt.Sprintf("%s=%q", key, err.Error())
		}
	}
	return key + "=" + val.String()
}

// needsQuoting reports whether s would be ambiguous unquoted.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r == '\'' || r == '`' || r == '[' || r == ']' {
			return true
		}
	}
	return false
}
