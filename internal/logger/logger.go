package logger

import (
	"AppBuilder/internal/console"
	"AppBuilder/internal/paths"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/lmittmann/tint"
)

// Custom log levels; NOTICE is what the console shows by default
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

const timeFormat = "2006-01-02 15:04:05"

// LevelVar is the console level, FileLevelVar the log file level.
var (
	LevelVar     = new(slog.LevelVar)
	FileLevelVar = new(slog.LevelVar)
)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel sets the console level. The file never logs less than INFO.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	FileLevelVar.Set(min(level, LevelInfo))
}

var levelLabels = map[slog.Level]string{
	LevelTrace:  "[TRACE ]",
	LevelDebug:  "[DEBUG ]",
	LevelInfo:   "[INFO  ]",
	LevelNotice: "[NOTICE]",
	LevelWarn:   "[WARN  ]",
	LevelError:  "[ERROR ]",
	LevelFatal:  "[FATAL ]",
}

func levelLabel(level slog.Level) string {
	if label, ok := levelLabels[level]; ok {
		return label
	}
	return "[" + level.String() + "]"
}

func levelColor(level slog.Level) string {
	switch {
	case level >= LevelFatal:
		return console.CodeRedBg + console.CodeWhite
	case level >= LevelError:
		return console.CodeRed
	case level >= LevelWarn:
		return console.CodeYellow
	case level >= LevelNotice:
		return console.CodeGreen
	}
	return console.CodeBlue
}

// NewLogger returns a logger writing to stderr and to the log file.
// Console colours are only used when stderr is a terminal.
func NewLogger() *slog.Logger {
	handlers := []slog.Handler{consoleHandler(os.Stderr)}
	if w := openLogFile(); w != nil {
		handlers = append(handlers, fileHandler(w))
	}
	return slog.New(&FanoutHandler{handlers: handlers})
}

func consoleHandler(w *os.File) slog.Handler {
	stat, _ := w.Stat()
	isTTY := stat != nil && stat.Mode()&os.ModeCharDevice != 0

	return tint.NewHandler(w, &tint.Options{
		Level:      LevelVar,
		TimeFormat: timeFormat,
		NoColor:    !isTTY,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey {
				return a
			}
			level := a.Value.Any().(slog.Level)
			label := levelLabel(level)
			if isTTY {
				label = levelColor(level) + label + console.CodeReset
			}
			a.Value = slog.StringValue(label + "  ")
			return a
		},
	})
}

func fileHandler(w *os.File) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      FileLevelVar,
		TimeFormat: timeFormat,
		NoColor:    true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.LevelKey:
				a.Value = slog.StringValue(levelLabel(a.Value.Any().(slog.Level)) + "  ")
			case slog.MessageKey:
				// Messages were already colourised by console.Parse
				a.Value = slog.StringValue(ansi.Strip(a.Value.String()))
			}
			return a
		},
	})
}

var logFile *os.File

// openLogFile truncates and opens the log file in the state directory.
func openLogFile() *os.File {
	path := paths.GetLogFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log folder: %v\n", err)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return nil
	}
	logFile = f
	return f
}

// Cleanup closes the log file.
func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			errs = append(errs, handler.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	return h.each(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *FanoutHandler) each(f func(slog.Handler) slog.Handler) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = f(handler)
	}
	return &FanoutHandler{handlers: out}
}

// resolveMsg flattens a message given as a string, a slice of lines or any value.
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt formats msg, resolves colour tags and writes one record per line.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	text := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(text, "%") {
		text = fmt.Sprintf(text, args...)
		args = nil
	}
	text = console.Parse(text)

	// Every line ends with a reset so colours never bleed into the next timestamp
	for i, line := range strings.Split(text, "\n") {
		r := slog.NewRecord(t, level, line+console.CodeReset, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Trace logs below DEBUG; it only reaches the console when the level is lowered further.
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}
