package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu       sync.RWMutex
	base     = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	debugLog *os.File
	logPath  string
)

// maxLogSize rotate the log file beyond this size
const maxLogSize = 10 * 1024 * 1024

// InitConsole logs human-readable lines to w (the server uses stderr)
func InitConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	noColor := w != io.Writer(os.Stderr)
	base = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
}

// Init initializes the file logger used by the client, whose terminal is owned by the UI
func Init(name string) error {
	// Create log directory in user's home
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".mine-sweeper")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, name+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := fmt.Sprintf("%s.%d", path, time.Now().Unix())
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	mu.Lock()
	debugLog = f
	logPath = path
	base = zerolog.New(f).With().Timestamp().Caller().Logger()
	mu.Unlock()

	LogInfo("Logger initialized, log file: %s", path)
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}
}

// L returns the process logger for structured fields
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	L().Info().Msgf(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	L().Error().Msgf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	L().Error().Str("stack", string(debug.Stack())).Msgf("[PANIC] %v", r)
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}
