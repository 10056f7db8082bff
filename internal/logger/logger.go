// Package logger installs the process-wide slog logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Level  string
	Format string // "console", "text" or "json"
	// File appends log lines to a file instead of Output.
	File   string
	Output io.Writer
}

var (
	mu sync.Mutex
	lg *slog.Logger
)

// Init builds a logger from cfg and makes it the slog default. The returned
// closer releases the log file, if any.
func Init(cfg Config) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cfg.Output = f
		closer = f
	}

	l := New(cfg)

	mu.Lock()
	lg = l
	mu.Unlock()
	slog.SetDefault(l)

	return closer, nil
}

// New builds a logger without installing it.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		handler = &consoleHandler{mu: &sync.Mutex{}, w: cfg.Output, level: level}
	}
	return slog.New(handler)
}

// L returns the installed logger, installing an info-level console logger
// on first use.
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if lg == nil {
		lg = New(Config{Level: "info"})
		slog.SetDefault(lg)
	}
	return lg
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s is a level name ParseLevel knows.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// consoleHandler writes one line per record:
//
//	12:00:00 INFO  Built panorama  panels=4 radius=2
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		b.WriteString(formatAttr(h.group, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(formatAttr(h.group, a))
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		mu:    h.mu,
		w:     h.w,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
		group: h.group,
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &consoleHandler{
		mu:    h.mu,
		w:     h.w,
		level: h.level,
		attrs: append([]slog.Attr{}, h.attrs...),
		group: prefix,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
