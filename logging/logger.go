package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var levelColors = map[LogLevel]string{
	DEBUG: "\033[36m",
	INFO:  "\033[38;5;195m",
	WARN:  "\033[33m",
	ERROR: "\033[31m",
	FATAL: "\033[35m",
}

const colorReset = "\033[0m"

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Color returns the ANSI escape used when colored output is enabled.
func (l LogLevel) Color() string {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return colorReset
}

// ParseLevel maps a config string to a level, defaulting to INFO.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// sink is shared by a logger and every child derived through WithPrefix so
// that level and output changes apply to the whole family.
type sink struct {
	mu          sync.RWMutex
	level       LogLevel
	out         io.Writer
	enableColor bool
	exit        func(int)
}

// Logger writes leveled, prefixed lines.
type Logger struct {
	sink   *sink
	prefix string
}

// Config holds logger options.
type Config struct {
	Level       string
	Output      io.Writer
	Prefix      string
	EnableColor bool
}

// DefaultConfig logs INFO and above to stdout with color.
func DefaultConfig() Config {
	return Config{Level: "info", Output: os.Stdout, EnableColor: true}
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Logger{
		sink: &sink{
			level:       ParseLevel(cfg.Level),
			out:         cfg.Output,
			enableColor: cfg.EnableColor,
			exit:        os.Exit,
		},
		prefix: cfg.Prefix,
	}
}

func NewDefault() *Logger {
	return New(DefaultConfig())
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(Config{Level: "fatal", Output: io.Discard})
}

func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.out = w
}

func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return level >= l.sink.level
}

func (l *Logger) format(level LogLevel, now time.Time, message string, color bool) string {
	var start, end string
	if color {
		start, end = level.Color(), colorReset
	}
	prefix := ""
	if l.prefix != "" {
		prefix = "[" + l.prefix + "] "
	}
	return fmt.Sprintf("%s%-5s %s %-30s%s%s\n",
		start, level, now.Format("2006-01-02 15:04:05.000"), prefix, message, end)
}

func (l *Logger) emit(level LogLevel, message string) {
	if !l.IsLevelEnabled(level) {
		return
	}

	l.sink.mu.Lock()
	line := l.format(level, time.Now(), message, l.sink.enableColor)
	_, _ = io.WriteString(l.sink.out, line)
	exit := l.sink.exit
	l.sink.mu.Unlock()

	if level == FATAL {
		exit(1)
	}
}

func (l *Logger) Debug(args ...interface{}) { l.emit(DEBUG, fmt.Sprint(args...)) }
func (l *Logger) Info(args ...interface{})  { l.emit(INFO, fmt.Sprint(args...)) }
func (l *Logger) Warn(args ...interface{})  { l.emit(WARN, fmt.Sprint(args...)) }
func (l *Logger) Error(args ...interface{}) { l.emit(ERROR, fmt.Sprint(args...)) }

// Fatal logs and terminates the process.
func (l *Logger) Fatal(args ...interface{}) { l.emit(FATAL, fmt.Sprint(args...)) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(WARN, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(ERROR, fmt.Sprintf(format, args...))
}

// Fatalf logs and terminates the process.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.emit(FATAL, fmt.Sprintf(format, args...))
}

// WithPrefix derives a child logger; nested prefixes are joined with ":".
func (l *Logger) WithPrefix(prefix string) *Logger {
	joined := prefix
	if l.prefix != "" {
		joined = l.prefix + ":" + prefix
	}
	return &Logger{sink: l.sink, prefix: joined}
}
