// Package log provides the per-run session log.
// Every line is appended to the log file; non-DEBUG lines are echoed to the console.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level is the severity of a log line. The set is closed.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag used in formatted log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// timestampLayout is the format used for line timestamps and the
// start/end time lines.
const timestampLayout = "2006-01-02 15:04:05"

// Logger writes the append-only session transcript for a single run.
// Lines go to the log file at every level; the console writer receives
// everything except DEBUG unless echoDebug is set.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	console   io.Writer
	path      string
	start     time.Time
	echoDebug bool
	closed    bool
}

// Option configures a Logger at construction time.
type Option func(*Logger)

// WithConsole redirects console echo to w instead of os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(l *Logger) { l.console = w }
}

// WithDebugEcho echoes DEBUG lines to the console as well.
func WithDebugEcho() Option {
	return func(l *Logger) { l.echoDebug = true }
}

// New opens the session log at path in append mode, creating the parent
// directory if it does not exist, records the session start time, and
// writes the opening "Start time" line. A directory-creation or open
// failure is returned to the caller; there is no retry.
func New(path string, opts ...Option) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{
		file:    f,
		console: os.Stdout,
		path:    path,
		start:   time.Now(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Log(LevelInfo, "Start time: "+l.start.Format(timestampLayout)); err != nil {
		_ = f.Close()
		return nil, err
	}

	return l, nil
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// StartTime returns the session start time recorded when the log was opened.
func (l *Logger) StartTime() time.Time {
	return l.start
}

// Log formats message as "[yyyy-MM-dd HH:mm:ss] [LEVEL] message", appends
// it to the log file, and echoes it to the console unless level is DEBUG.
func (l *Logger) Log(level Level, message string) error {
	line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format(timestampLayout), level, message)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("log %s: already closed", l.path)
	}

	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}

	if level != LevelDebug || l.echoDebug {
		fmt.Fprint(l.console, line)
	}

	return nil
}

// Logf is Log with Printf-style formatting of the message.
func (l *Logger) Logf(level Level, format string, args ...interface{}) error {
	return l.Log(level, fmt.Sprintf(format, args...))
}

// Close closes the underlying log file. Safe to call more than once.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// Timestamp formats t the way log lines and the start/end lines do.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
