// Package logging builds the process logger.
//
// Components take a logr.Logger; this package is the only place a sink is
// created. Nothing is configured at import time.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is console or json. Empty picks console on a terminal and json
	// otherwise.
	Format string
	// Path is a log file. Empty means stderr.
	Path string
	// InvocationID tags every line. Empty generates a new one.
	InvocationID string

	// Writer overrides the output. Used in tests.
	Writer io.Writer
}

// New builds a logger from opts. The returned cleanup flushes and closes
// the sink and is safe to call once the logger is no longer used.
func New(opts Options) (logr.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	var (
		sink    zapcore.WriteSyncer
		closeFn = func() {}
		tty     bool
	)
	switch {
	case opts.Writer != nil:
		sink = zapcore.AddSync(opts.Writer)
	case opts.Path != "":
		// #nosec G304
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return logr.Discard(), func() {}, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = zapcore.AddSync(f)
		closeFn = func() { _ = f.Close() }
	default:
		sink = zapcore.Lock(os.Stderr)
		tty = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatJSON
		if tty {
			format = FormatConsole
		}
	}

	encoder, err := newEncoder(format, tty)
	if err != nil {
		closeFn()
		return logr.Discard(), func() {}, err
	}

	id := opts.InvocationID
	if id == "" {
		id = uuid.New().String()
	}

	core := zapcore.NewCore(encoder, sink, level)
	zl := zap.New(core).With(zap.String("invocation", id))

	cleanup := func() {
		_ = zl.Sync()
		closeFn()
	}
	return zapr.NewLogger(zl), cleanup, nil
}

// ParseLevel maps a level name to a zap level. Debug is logr V(1).
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

func newEncoder(format string, color bool) (zapcore.Encoder, error) {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	switch format {
	case FormatJSON:
		return zapcore.NewJSONEncoder(cfg), nil
	case FormatConsole:
		if color {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", format)
	}
}
