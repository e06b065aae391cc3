package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Leveled logger shared by the API process and its commands.
// - package-level functions, safe for concurrent use
// - Debug/Info/Warn/Error/Fatal variants and Init(level)
// - text (default) or json output via SetOutput

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	level  Level = LevelInfo
	lvlVar       = new(slog.LevelVar)
	logger       = build(os.Stdout, "text")
)

// slogFatal sits above slog.LevelError so fatal lines are never filtered.
const slogFatal = slog.Level(12)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
	lvlVar.Set(toSlog(level))
}

// SetOutput replaces the destination and encoding. format is "json" or "text";
// anything else falls back to text.
func SetOutput(w io.Writer, format string) {
	if w == nil {
		w = os.Stdout
	}
	lg := build(w, format)
	mu.Lock()
	logger = lg
	mu.Unlock()
}

func build(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvlVar, ReplaceAttr: renameFatal}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func renameFatal(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lv, ok := a.Value.Any().(slog.Level); ok && lv == slogFatal {
			a.Value = slog.StringValue("FATAL")
		}
	}
	return a
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelFatal:
		return slogFatal
	}
	return slog.LevelInfo
}

func emit(l Level, msg string, attrs ...any) {
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.Log(context.Background(), toSlog(l), msg, attrs...)
}

func Debugf(format string, v ...interface{}) { emit(LevelDebug, fmt.Sprintf(format, v...)) }
func Infof(format string, v ...interface{})  { emit(LevelInfo, fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...interface{})  { emit(LevelWarn, fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...interface{}) { emit(LevelError, fmt.Sprintf(format, v...)) }

func Fatalf(format string, v ...interface{}) {
	emit(LevelFatal, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// With logs msg at the given level with structured key/value pairs.
func With(l Level, msg string, kv ...any) { emit(l, msg, kv...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	emit(LevelInfo, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
