// Package log is a thin structured-logging layer over logrus. A package
// level logger serves the CLI; the TUI redirects it to a file because the
// terminal belongs to bubbletea.
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"photocull/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus entry so fields can be accumulated with With.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.entry.Logger.SetOutput(w)
	}
}

// WithJSON switches to JSON lines with message and timestamp keys.
func WithJSON() Option {
	return func(l *Logger) {
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "timestamp",
			},
		})
	}
}

// WithFile appends log output to path, creating parent directories. On
// failure the logger keeps its previous output.
func WithFile(path string) Option {
	return func(l *Logger) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		l.file = f
		l.entry.Logger.SetOutput(f)
	}
}

// WithDebug enables debug output on this logger regardless of SetDebug.
func WithDebug() Option {
	return func(l *Logger) {
		l.entry.Logger.SetLevel(logrus.DebugLevel)
	}
}

// NewLogger creates a text logger on stdout.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	if isDebug {
		base.SetLevel(logrus.DebugLevel)
	}
	l := &Logger{entry: logrus.NewEntry(base)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Close releases the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Close closes the package logger's file, if any.
func Close() error {
	return logger.Close()
}

// SetDebug toggles debug output on the package logger and on loggers
// created afterwards.
func SetDebug(debug bool) {
	isDebug = debug
	if debug {
		logger.entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.entry.Logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects the package logger.
func SetOutput(w io.Writer) {
	logger.entry.Logger.SetOutput(w)
}

// With returns a child logger carrying fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithContext attaches ctx to the entry.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

// WithError attaches err and, for application errors, its kind and
// subject.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}
	var fileErr *errors.FileError
	var moveErr *errors.MoveError
	var configErr *errors.ConfigError
	var storeErr *errors.StoreError
	switch {
	case errors.As(err, &moveErr):
		fields = append(fields, F("source", moveErr.Source()), F("destination", moveErr.Destination()))
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
	case errors.As(err, &storeErr):
		fields = append(fields, F("operation", storeErr.Operation()))
	}
	return l.With(fields...)
}

func (l *Logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *Logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

// Info logs at info level on the package logger.
func Info(args ...interface{}) { logger.Info(args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

// Warn logs a warning message
func Warn(args ...interface{}) { logger.Warn(args...) }

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

// Error logs an error message
func Error(args ...interface{}) { logger.Error(args...) }

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// Debug logs only when debug is enabled
func Debug(args ...interface{}) { logger.Debug(args...) }

// Debugf logs a formatted message only when debug is enabled
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}
