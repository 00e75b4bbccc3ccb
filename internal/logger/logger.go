package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

// Logger is the logging surface used across rpcdoc.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ParseLevel validates a level name. An empty name means info.
func ParseLevel(s string) (LogLevel, error) {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LogLevelInfo, nil
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelNone:
		return l, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelNone:
		// high enough to suppress everything
		return slog.Level(1000)
	default:
		return slog.LevelInfo
	}
}

// textHandler writes "2006/01/02 15:04:05 [TAG] LEVEL msg key=value" lines.
type textHandler struct {
	level slog.Level
	tag   string
	w     io.Writer
	attrs []slog.Attr
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s %s", r.Time.Format("2006/01/02 15:04:05"), h.tag, r.Level.String(), r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
		return true
	})
	sb.WriteByte('\n')
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *textHandler) WithGroup(string) slog.Handler {
	return h
}

// New returns a Logger writing to w.
func New(w io.Writer, level LogLevel, tag string) Logger {
	if tag == "" {
		tag = "RPCDOC"
	}
	return &slogLogger{l: slog.New(&textHandler{level: level.slogLevel(), tag: tag, w: w})}
}

// SetupLogger configures the global slog logger to write to stderr.
func SetupLogger(level LogLevel) {
	slog.SetDefault(slog.New(&textHandler{level: level.slogLevel(), tag: "RPCDOC", w: os.Stderr}))
}

// NewDefaultLogger logs through the global slog logger.
func NewDefaultLogger() Logger {
	return &slogLogger{}
}

// Nop discards everything.
func Nop() Logger {
	return New(io.Discard, LogLevelNone, "")
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) logger() *slog.Logger {
	if s.l == nil {
		return slog.Default()
	}
	return s.l
}

func (s *slogLogger) Debug(msg string, args ...any) { s.logger().Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.logger().Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.logger().Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.logger().Error(msg, args...) }
