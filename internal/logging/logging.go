// Package logging configures the zerolog logger used across Horizon:
// console output on stderr plus a rotating log file under the Horizon
// home directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/horizon/internal/constants"
)

// logFileWriter holds the log file writer for cleanup purposes.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// globalLoggerMu protects concurrent writes to the zerolog global logger.
var globalLoggerMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// Options controls logger construction.
type Options struct {
	// Verbose selects debug level; Quiet selects warn level. Verbose wins
	// when both are set.
	Verbose bool
	Quiet   bool

	// Home is the Horizon home directory holding the logs/ subdirectory.
	// Empty disables the file writer.
	Home string

	// Rotation settings for the log file.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init creates and configures a zerolog.Logger based on the options.
//
// Log levels are set as follows:
//   - Verbose: Debug level (most detailed)
//   - Quiet: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Output format is determined by the terminal:
//   - TTY with colors enabled: Console writer with timestamps
//   - Non-TTY or NO_COLOR set: JSON output to stderr
//
// The logger also writes to <home>/logs/horizon.log with rotation enabled.
// If the log file cannot be created, the logger continues with console-only
// output.
func Init(opts Options) zerolog.Logger {
	level := selectLevel(opts.Verbose, opts.Quiet)
	console := selectOutput()

	var writer io.Writer = console
	if fileWriter, err := createLogFileWriter(opts); err == nil && fileWriter != nil {
		logFileWriter = fileWriter
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// InitWithWriter creates a logger with a custom writer.
// This is primarily intended for testing purposes.
func InitWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	level := selectLevel(verbose, quiet)
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger configures the global zerolog logger to match, so any
// code using the github.com/rs/zerolog/log package gets the same output.
func setGlobalLogger(logger zerolog.Logger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	log.Logger = logger
}

// Close closes the log file writer if it was opened.
// This should be called during application shutdown.
func Close() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// FilePath returns the path to the log file under the given home directory.
// Useful for displaying the log location to users.
func FilePath(home string) string {
	return filepath.Join(home, constants.LogsDir, constants.LogFileName)
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings.
func selectOutput() io.Writer {
	// Use console writer for TTY without NO_COLOR
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	// Default to JSON output for non-TTY or when NO_COLOR is set
	return os.Stderr
}

// createLogFileWriter creates a rotating file writer for the log file.
func createLogFileWriter(opts Options) (io.WriteCloser, error) {
	if opts.Home == "" {
		return nil, nil
	}

	logDir := filepath.Join(opts.Home, constants.LogsDir)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}, nil
}
