// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// Monitoring plugins must keep stdout to a single status line, so every
// logger in this package writes to stderr by default; the verdict itself
// is emitted separately by the CLI layer.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for human-readable stderr output with timestamps disabled.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger writing to stderr.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// DebugLogger implements Logger for verbose diagnostics.
// It is silent unless enabled, so the default probe run produces no
// output beyond the plugin status line.
//
// DebugLogger is safe for concurrent use by multiple goroutines.
type DebugLogger struct {
	mu      sync.Mutex
	logger  *log.Logger
	enabled bool
}

// NewDebugLogger creates a new debug logger writing to stderr with a
// "debug: " prefix. The logger starts disabled; call SetEnabled(true)
// to turn on diagnostic output.
func NewDebugLogger() *DebugLogger {
	return &DebugLogger{logger: log.New(os.Stderr, "debug: ", 0)}
}

// SetEnabled toggles diagnostic output.
func (d *DebugLogger) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
}

// Printf formats and logs a diagnostic message when the logger is enabled.
func (d *DebugLogger) Printf(format string, v ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return
	}
	d.logger.Printf(format, v...)
}

// Println logs a diagnostic message when the logger is enabled.
func (d *DebugLogger) Println(v ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return
	}
	d.logger.Println(v...)
}

// SetOutput sets the output destination for the debug logger.
func (d *DebugLogger) SetOutput(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	d.logger.SetOutput(w)
}
