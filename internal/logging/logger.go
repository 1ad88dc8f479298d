package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error-valued field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application. Two
// adapters implement it: ZerologAdapter for production and
// StdLoggerAdapter for contexts where only a *log.Logger exists.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, v ...any)
	Println(v ...any)
}

// ─────────────────────────────────────────────────────────────────────────────
// Zerolog adapter
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	zl zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{zl: zl}
}

// NewLogger builds a JSON logger writing to w, tagged with the given
// component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{zl: zl}
}

// NewDefaultLogger builds a console logger on stderr at info level.
func NewDefaultLogger() *ZerologAdapter {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return &ZerologAdapter{zl: zl}
}

// Configure builds the application logger from the configuration
// surface: JSON or console format, and debug/info/error level from the
// verbose and quiet switches.
func Configure(w io.Writer, verbose, quiet, jsonLogs bool) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	if jsonLogs {
		out = w
	}
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Zerolog exposes the wrapped zerolog.Logger for packages that consume
// zerolog directly.
func (a *ZerologAdapter) Zerolog() zerolog.Logger { return a.zl }

// Info logs at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	a.applyFields(a.zl.Info(), fields).Msg(msg)
}

// Error logs at error level with an optional cause.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	ev := a.zl.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	a.applyFields(ev, fields).Msg(msg)
}

// Debug logs at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	a.applyFields(a.zl.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at info level, for call sites written
// against the standard library signature.
func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.zl.Info().Msg(fmt.Sprintf(format, v...))
}

// Println logs its arguments at info level.
func (a *ZerologAdapter) Println(v ...any) {
	a.zl.Info().Msg(fmt.Sprint(v...))
}

// applyFields attaches typed fields to a zerolog event.
func (a *ZerologAdapter) applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case bool:
			ev = ev.Bool(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// ─────────────────────────────────────────────────────────────────────────────
// Standard library adapter
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter adapts a *log.Logger to the Logger interface. Fields
// are rendered as key=value pairs after the message.
type StdLoggerAdapter struct {
	l *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{l: l}
}

// Info logs at info level.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.l.Println(append([]any{"[INFO]", msg}, flatten(fields)...)...)
}

// Error logs at error level with an optional cause.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	args := []any{"[ERROR]", msg}
	if err != nil {
		args = append(args, "error="+err.Error())
	}
	a.l.Println(append(args, flatten(fields)...)...)
}

// Debug logs at debug level.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.l.Println(append([]any{"[DEBUG]", msg}, flatten(fields)...)...)
}

// Printf logs a formatted message.
func (a *StdLoggerAdapter) Printf(format string, v ...any) {
	a.l.Printf(format, v...)
}

// Println logs its arguments.
func (a *StdLoggerAdapter) Println(v ...any) {
	a.l.Println(v...)
}

func flatten(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return out
}
