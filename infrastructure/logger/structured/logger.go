// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Supports level filtering, JSON or text output and rotating log files via lumberjack

package structured

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is json or text
	Format string

	// File, when set, receives the log stream with rotation instead of stdout
	File string
}

// Logger implements the Logger interface on top of logrus
type Logger struct {
	entry *logrus.Logger
}

// New creates a logger from options
func New(opts Options) (*Logger, error) {
	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	return NewWithWriter(out, opts)
}

// NewWithWriter creates a logger writing to out
func NewWithWriter(out io.Writer, opts Options) (*Logger, error) {
	l := logrus.New()
	l.SetOutput(out)

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	l.SetLevel(parsed)

	switch strings.ToLower(opts.Format) {
	case "", "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return &Logger{entry: l}, nil
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

// Writer exposes the log stream at info level, for libraries that want an io.Writer
func (l *Logger) Writer() *io.PipeWriter {
	return l.entry.WriterLevel(logrus.InfoLevel)
}
