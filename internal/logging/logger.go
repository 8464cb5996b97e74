package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

const requestIDKey contextKey = "request_id"

var (
	baseLogger   zerolog.Logger
	baseLoggerMu sync.RWMutex
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	setBaseLogger(newLogger(os.Stdout, zerolog.InfoLevel, "text"))
}

// Init configures the process-wide logger. Unknown levels fall back to info,
// unknown formats to the console writer.
func Init(level, format string) {
	setBaseLogger(newLogger(os.Stdout, ParseLevel(level), format))
}

// SetOutput redirects the base logger, keeping its level. Used by tests.
func SetOutput(w io.Writer) {
	current := L()
	setBaseLogger(newLogger(w, current.GetLevel(), "json"))
}

func ParseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func newLogger(w io.Writer, level zerolog.Level, format string) zerolog.Logger {
	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func setBaseLogger(logger zerolog.Logger) {
	baseLoggerMu.Lock()
	baseLogger = logger
	baseLoggerMu.Unlock()
}

// L returns the base logger.
func L() zerolog.Logger {
	baseLoggerMu.RLock()
	logger := baseLogger
	baseLoggerMu.RUnlock()
	return logger
}

// WithContext returns the base logger tagged with the request id carried by ctx.
func WithContext(ctx context.Context) zerolog.Logger {
	rid := RequestIDFromContext(ctx)
	if rid == "" {
		return L()
	}
	return L().With().Str("request_id", rid).Logger()
}

func ContextWithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
