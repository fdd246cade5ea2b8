// Package logger adapts github.com/charmbracelet/log into the structured,
// context-aware logging contract used across the engine: key/value fields,
// a derivable "With" logger, and a correlation ID threaded through context
// so concurrent extractors' interleaved log lines can still be reassembled
// into one run.
package logger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Options configures a Logger at construction time.
type Options struct {
	Writer    io.Writer
	Level     string
	Component string
	JSON      bool
}

// Logger is the structured logging contract used by every package in this
// module. All calls are key/value pairs and safe for concurrent use.
type Logger struct {
	base   *cblog.Logger
	fields []interface{}
}

// New creates a configured Logger.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	logOpts := cblog.Options{
		Level:           level,
		ReportTimestamp: true,
	}
	if opts.JSON {
		logOpts.Formatter = cblog.JSONFormatter
	}

	base := cblog.NewWithOptions(writer, logOpts)

	var fields []interface{}
	if opts.Component != "" {
		fields = append(fields, "component", opts.Component)
	}

	return &Logger{base: base, fields: fields}, nil
}

// With returns a derived logger that always includes the supplied fields.
func (l *Logger) With(fields ...interface{}) *Logger {
	if l == nil {
		return l
	}
	next := make([]interface{}, 0, len(l.fields)+len(fields))
	next = append(next, l.fields...)
	next = append(next, fields...)
	return &Logger{base: l.base, fields: next}
}

// Debug emits a debug-level entry.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.DebugLevel, msg, fields...)
}

// Info emits an info-level entry.
func (l *Logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.InfoLevel, msg, fields...)
}

// Warn emits a warning-level entry.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.WarnLevel, msg, fields...)
}

// Error emits an error-level entry.
func (l *Logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.ErrorLevel, msg, fields...)
}

func (l *Logger) log(ctx context.Context, level cblog.Level, msg string, fields ...interface{}) {
	if l == nil || l.base == nil {
		return
	}
	payload := make([]interface{}, 0, len(l.fields)+len(fields)+2)
	payload = append(payload, l.fields...)
	payload = append(payload, fields...)
	if id := CorrelationID(ctx); id != "" {
		payload = append(payload, "correlation_id", id)
	}

	switch level {
	case cblog.DebugLevel:
		l.base.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.base.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.base.Error(msg, payload...)
	default:
		l.base.Info(msg, payload...)
	}
}

type correlationIDKey struct{}

// WithCorrelationID attaches a correlation ID to ctx for downstream logging.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID extracts the correlation ID from ctx, or "" if unset.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// NewCorrelationID generates a fresh UUIDv4-shaped correlation ID. Intended
// to be called once per run, at the CLI entry point.
func NewCorrelationID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unavailable"
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	var encoded [32]byte
	hex.Encode(encoded[:], b[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		encoded[0:8], encoded[8:12], encoded[12:16], encoded[16:20], encoded[20:32])
}
