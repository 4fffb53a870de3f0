// Package logger provides the process-wide logging facility for ChartScope.
//
// All output goes to stderr: stdout is reserved for the MCP protocol stream
// and must never carry log lines. The logger defaults to a console encoder at
// info level until Initialize is called with the configured options.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = newSugared(zapcore.InfoLevel, true)
)

// Option configures the logger during Initialize.
type Option func(*settings)

type settings struct {
	level        string
	unstructured bool
}

// WithLevel sets the minimum log level (debug, info, warn, error).
// Unrecognized values fall back to info.
func WithLevel(level string) Option {
	return func(s *settings) {
		s.level = level
	}
}

// WithUnstructured enables the human-readable console encoder instead of JSON.
func WithUnstructured(unstructured bool) Option {
	return func(s *settings) {
		s.unstructured = unstructured
	}
}

// Initialize configures the process-wide logger. Safe to call more than once;
// the last call wins. Environment variables CHARTSCOPE_LOG_LEVEL and
// CHARTSCOPE_UNSTRUCTURED_LOGS provide defaults when no options are given.
func Initialize(opts ...Option) {
	s := settings{
		level:        os.Getenv("CHARTSCOPE_LOG_LEVEL"),
		unstructured: os.Getenv("CHARTSCOPE_UNSTRUCTURED_LOGS") == "true",
	}
	for _, opt := range opts {
		opt(&s)
	}

	level, err := zapcore.ParseLevel(s.level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	mu.Lock()
	defer mu.Unlock()
	log = newSugared(level, s.unstructured)
}

func newSugared(level zapcore.Level, unstructured bool) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if unstructured {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return zap.New(core).Sugar()
}

// setLogger swaps the package logger, returning the previous one. Test hook.
func setLogger(l *zap.SugaredLogger) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	prev := log
	log = l
	return prev
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync flushes buffered log entries. Called before process exit.
func Sync() {
	//nolint:errcheck // stderr sync failures are not actionable
	_ = current().Sync()
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { current().Debugf(format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { current().Infof(format, args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) { current().Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { current().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }

// Debug logs a message with structured key-value pairs at debug level.
func Debug(msg string, keysAndValues ...any) { current().Debugw(msg, keysAndValues...) }

// Info logs a message with structured key-value pairs at info level.
func Info(msg string, keysAndValues ...any) { current().Infow(msg, keysAndValues...) }

// Warn logs a message with structured key-value pairs at warn level.
func Warn(msg string, keysAndValues ...any) { current().Warnw(msg, keysAndValues...) }

// Error logs a message with structured key-value pairs at error level.
func Error(msg string, keysAndValues ...any) { current().Errorw(msg, keysAndValues...) }

// Verbose gates detailed diagnostics behind a verbosity level.
type Verbose struct {
	enabled bool
}

// V returns a Verbose handle; level 0 always logs, higher levels log at debug.
func V(level int) Verbose {
	if level <= 0 {
		return Verbose{enabled: true}
	}
	return Verbose{enabled: current().Desugar().Core().Enabled(zapcore.DebugLevel)}
}

// Info logs the message with key-value pairs when the verbosity is enabled.
func (v Verbose) Info(msg string, keysAndValues ...any) {
	if !v.enabled {
		return
	}
	current().Debugw(msg, keysAndValues...)
}
