// Package output provides terminal output and the debug log file.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Splog writes user-facing output to the terminal and mirrors everything,
// including debug messages, into a rotating log file.
type Splog struct {
	writer  io.Writer
	logger  *slog.Logger
	verbose bool
}

// NewSplog creates a Splog writing to stdout and the default log file.
func NewSplog(verbose bool) *Splog {
	fileHandler := slog.NewTextHandler(newLogFileWriter(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return &Splog{
		writer:  os.Stdout,
		logger:  slog.New(fileHandler),
		verbose: verbose,
	}
}

// NewSplogWithWriter creates a Splog writing terminal output to w. Used in tests.
func NewSplogWithWriter(w io.Writer, verbose bool) *Splog {
	return &Splog{
		writer:  w,
		logger:  slog.New(discardHandler{}),
		verbose: verbose,
	}
}

// newLogFileWriter returns the rotating file sink for the debug log.
// STACKPR_LOG_FILE overrides the default ~/.stackpr/logs/stackpr.log.
func newLogFileWriter() io.Writer {
	path := os.Getenv("STACKPR_LOG_FILE")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			path = "stackpr.log"
		} else {
			path = filepath.Join(homeDir, ".stackpr", "logs", "stackpr.log")
		}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}
}

// Info writes an info message to the terminal and the log file.
func (s *Splog) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(s.writer, msg)
	s.logger.Info(msg)
}

// Warn writes a warning message.
func (s *Splog) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(s.writer, styleWarn.Render("warning: ")+msg)
	s.logger.Warn(msg)
}

// Error writes an error message.
func (s *Splog) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(s.writer, styleError.Render("error: ")+msg)
	s.logger.Error(msg)
}

// Debug writes a debug message. Shown on the terminal only in verbose mode;
// always written to the log file.
func (s *Splog) Debug(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if s.verbose {
		fmt.Fprintln(s.writer, Subtle(msg))
	}
	s.logger.Debug(msg)
}

// Newline writes a blank line to the terminal.
func (s *Splog) Newline() {
	fmt.Fprintln(s.writer)
}

// discardHandler drops all records. Used when no log file is wanted.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
