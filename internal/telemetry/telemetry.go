// Package telemetry wraps zerolog for dnsgen's diagnostic output: thread
// startup/shutdown, socket setup, and retry noise that must never share a
// stream with the spec-contracted stats/stdout output (see
// internal/generator/rateadapter.go and internal/errs).
package telemetry

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is a thin, leveled wrapper around zerolog.Logger exposing the
// key-value call shape dnsgen's workers use.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing to w. verbose enables debug-level output;
// otherwise only info-and-above is emitted.
func New(w io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	z := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Discard returns a Logger that drops everything, for tests and library
// callers that don't want diagnostic output.
func Discard() *Logger {
	return &Logger{z: zerolog.Nop()}
}

func (l *Logger) event(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}

// Debug logs at debug level with alternating key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) { l.event(l.z.Debug(), msg, kv) }

// Info logs at info level with alternating key/value pairs.
func (l *Logger) Info(msg string, kv ...any) { l.event(l.z.Info(), msg, kv) }

// Warn logs at warn level with alternating key/value pairs.
func (l *Logger) Warn(msg string, kv ...any) { l.event(l.z.Warn(), msg, kv) }

// Error logs at error level with alternating key/value pairs.
func (l *Logger) Error(msg string, kv ...any) { l.event(l.z.Error(), msg, kv) }
