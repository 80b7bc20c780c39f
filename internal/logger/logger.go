package logger

import (
	"fmt"
	"io"
	"leatherinspection/internal/config"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level orders log severities; entries below the configured level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging (debug/info/warning/error) to files and stdout/stderr.
type Logger struct {
	debugLog   *log.Logger
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	level      Level
	logDir     string
	files      []*os.File
	mu         sync.Mutex
}

// NewLogger creates a Logger from config. When LogDirectory is set the
// directory is created and every level is also appended to its own file.
func NewLogger(config *config.Config) *Logger {
	logger := &Logger{
		logDir: config.LogDirectory,
		level:  ParseLevel(config.LogLevel),
	}

	if logger.logDir == "" {
		logger.setupLoggers(os.Stdout, os.Stdout, os.Stdout, os.Stderr)
		return logger
	}

	if err := os.MkdirAll(logger.logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	infoFile := logger.openLogFile(filepath.Join(logger.logDir, "info.log"))
	warningFile := logger.openLogFile(filepath.Join(logger.logDir, "warning.log"))
	errorFile := logger.openLogFile(filepath.Join(logger.logDir, "error.log"))

	logger.setupLoggers(
		os.Stdout,
		io.MultiWriter(os.Stdout, infoFile),
		io.MultiWriter(os.Stdout, warningFile),
		io.MultiWriter(os.Stderr, errorFile),
	)
	return logger
}

// NewWithWriter creates a file-less Logger writing every level to w.
func NewWithWriter(w io.Writer, level Level) *Logger {
	logger := &Logger{level: level}
	logger.setupLoggers(w, w, w, w)
	return logger
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}

// setupLoggers initializes per-level loggers on the given writers.
func (l *Logger) setupLoggers(debug, info, warning, errorW io.Writer) {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	l.debugLog = log.New(debug, "🔍 DEBUG   ", flags)
	l.infoLog = log.New(info, "ℹ️  INFO    ", flags)
	l.warningLog = log.New(warning, "⚠️  WARNING ", flags)
	l.errorLog = log.New(errorW, "❌ ERROR   ", flags)
}

// openLogFile opens or creates a log file for appending.
func (l *Logger) openLogFile(filename string) *os.File {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", filename, err)
	}
	l.files = append(l.files, file)
	return file
}

func (l *Logger) output(level Level, target *log.Logger, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	// calldepth 3 points Lshortfile at the caller of Info/Warning/...
	target.Output(3, fmt.Sprintf(format, v...))
}

// Debug writes a formatted debug-level log entry.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.output(LevelDebug, l.debugLog, format, v...)
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.output(LevelInfo, l.infoLog, format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.output(LevelWarning, l.warningLog, format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.output(LevelError, l.errorLog, format, v...)
}

// LogDirectory returns the directory holding the per-level files, or "" when
// file logging is disabled.
func (l *Logger) LogDirectory() string {
	return l.logDir
}

// Close closes the log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}
