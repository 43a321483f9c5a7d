// Package logging wraps zap behind a key/value API. Keys are strings and are
// followed by their value; an error value is logged under its key with its
// message.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Format selects the encoder: JSON for services, console for the CLI.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

type Logger struct {
	zap *zap.Logger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// New builds a logger writing to w. A nil w writes to stdout.
func New(format Format, level Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}

	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch format {
	case FormatConsole:
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.CallerKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(cfg)
	default:
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewJSON(level Level) *Logger {
	return New(FormatJSON, level, os.Stdout)
}

func NewConsole(level Level) *Logger {
	return New(FormatConsole, level, os.Stderr)
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

// ParseLevel accepts debug, info, warn/warning and error.
func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unsupported log level %q", raw)
	}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		l = Default()
	}
	return &Logger{zap: l.zap.With(fields(args)...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.write(nil, LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(nil, LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(nil, LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(nil, LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	if l == nil {
		l = Default()
	}
	ce := l.zap.Check(level, msg)
	if ce == nil {
		return
	}
	out := fields(args)
	if ctx != nil {
		if span := trace.SpanContextFromContext(ctx); span.IsValid() {
			out = append(out,
				zap.String("trace_id", span.TraceID().String()),
				zap.String("span_id", span.SpanID().String()),
			)
		}
	}
	ce.Write(out...)
}

func fields(args []any) []zap.Field {
	out := make([]zap.Field, 0, (len(args)+1)/2+2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if i+1 == len(args) {
			out = append(out, zap.Any(key, nil))
			break
		}
		if err, ok := args[i+1].(error); ok {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, args[i+1]))
	}
	return out
}
