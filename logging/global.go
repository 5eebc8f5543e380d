package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

var global atomic.Pointer[Logger]

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	global.Store(New(Config{
		Level:       level,
		Output:      os.Stdout,
		EnableColor: os.Getenv("LOG_COLOR") != "false",
	}))
}

func GetGlobalLogger() *Logger {
	return global.Load()
}

func SetGlobalLogger(logger *Logger) {
	global.Store(logger)
}

// Configure replaces the global logger. Loggers already derived through
// WithPrefix keep writing to the previous sink.
func Configure(cfg Config) {
	global.Store(New(cfg))
}

// OpenLogFile opens (appending) dir/name and returns a writer that tees to
// stdout and the file. The caller owns closing the file.
func OpenLogFile(dir, name string) (io.Writer, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, f), f, nil
}

func Debug(args ...interface{}) { global.Load().Debug(args...) }
func Info(args ...interface{})  { global.Load().Info(args...) }
func Warn(args ...interface{})  { global.Load().Warn(args...) }
func Error(args ...interface{}) { global.Load().Error(args...) }
func Fatal(args ...interface{}) { global.Load().Fatal(args...) }

func Debugf(format string, args ...interface{}) { global.Load().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { global.Load().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { global.Load().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { global.Load().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { global.Load().Fatalf(format, args...) }

// WithPrefix derives a component logger from the current global logger.
func WithPrefix(prefix string) *Logger {
	return global.Load().WithPrefix(prefix)
}
