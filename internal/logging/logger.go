// Package logging provides structured logging using bolt.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
)

var (
	mu            sync.Mutex
	defaultLogger *bolt.Logger
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is json or console.
	Format string

	Output io.Writer
}

// DefaultConfig logs info and above to stderr in console format, keeping
// stdout free for reports.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

func parseLevel(s string) bolt.Level {
	switch s {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "info":
		return bolt.INFO
	case "warn":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// New builds a logger from cfg without touching the default logger.
func New(cfg Config) *bolt.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var handler bolt.Handler
	if cfg.Format == "json" {
		handler = bolt.NewJSONHandler(out)
	} else {
		handler = bolt.NewConsoleHandler(out)
	}
	return bolt.New(handler).SetLevel(parseLevel(cfg.Level))
}

// Init replaces the default logger.
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

// Get returns the default logger, creating one if Init was never called.
func Get() *bolt.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(DefaultConfig())
	}
	return defaultLogger
}

// LogEvent wraps a bolt.Event so Fields can be chained onto it.
type LogEvent struct {
	event *bolt.Event
}

// With applies fields and returns the wrapper for chaining.
func (l *LogEvent) With(fields ...Field) *LogEvent {
	for _, f := range fields {
		l.event = f(l.event)
	}
	return l
}

// Msg sends the log event with a message.
func (l *LogEvent) Msg(msg string) {
	l.event.Msg(msg)
}

func Debug() *LogEvent { return &LogEvent{event: Get().Debug()} }
func Info() *LogEvent  { return &LogEvent{event: Get().Info()} }
func Warn() *LogEvent  { return &LogEvent{event: Get().Warn()} }
func Error() *LogEvent { return &LogEvent{event: Get().Error()} }

// At returns a LogEvent for a level name, falling back to info.
func At(level string) *LogEvent {
	switch level {
	case "debug", "trace":
		return Debug()
	case "warn":
		return Warn()
	case "error":
		return Error()
	default:
		return Info()
	}
}
