// Package log provides leveled, structured logging for the cfgs tool.
// Output is plain text by default and JSON when requested.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity levels.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines structured logging methods. Args are alternating key/value
// pairs appended to the message.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	SetLevel(level Level)
}

// Options configures a logger.
type Options struct {
	Level      Level
	JSONOutput bool
	Writer     io.Writer // defaults to os.Stderr
}

type logger struct {
	mu         sync.Mutex
	level      Level
	jsonOutput bool
	w          io.Writer
}

// New creates a logger with the given options.
func New(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return &logger{
		level:      opts.Level,
		jsonOutput: opts.JSONOutput,
		w:          w,
	}
}

var (
	defaultLogger Logger
	once          sync.Once
)

// Default returns the shared process-wide logger.
func Default() Logger {
	once.Do(func() {
		defaultLogger = New(Options{Level: InfoLevel})
	})
	return defaultLogger
}

func (l *logger) Debug(msg string, args ...interface{}) { l.write(DebugLevel, msg, args) }
func (l *logger) Info(msg string, args ...interface{})  { l.write(InfoLevel, msg, args) }
func (l *logger) Warn(msg string, args ...interface{})  { l.write(WarnLevel, msg, args) }
func (l *logger) Error(msg string, args ...interface{}) { l.write(ErrorLevel, msg, args) }

func (l *logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *logger) write(level Level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")

	if l.jsonOutput {
		entry := map[string]interface{}{
			"timestamp": ts,
			"level":     level.String(),
			"message":   msg,
		}
		for i := 0; i+1 < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok {
				continue
			}
			entry[key] = args[i+1]
		}
		data, _ := json.Marshal(entry)
		fmt.Fprintln(l.w, string(data))
		return
	}

	fmt.Fprintf(l.w, "%s [%s] %s\n", ts, level.String(), formatMessage(msg, args))
}

// formatMessage appends key=value pairs to the message.
func formatMessage(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, " %s=%v", key, args[i+1])
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(&sb, " %v", args[len(args)-1])
	}
	return sb.String()
}
