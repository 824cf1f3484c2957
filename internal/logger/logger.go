// Package logger is the diagnostic log of motocheck. Everything except
// errors is silent unless --verbose is set; output goes to stderr so it
// never mixes with command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose turns verbose logging on or off.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether verbose logging is on.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects the log. Tests pass a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// logf writes one line. Writes are serialised so concurrent photo
// workers never interleave partial lines.
func logf(lvl level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose && lvl != levelError {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", lvl, fmt.Sprintf(format, args...))
}

// Debug logs pipeline detail.
func Debug(format string, args ...any) { logf(levelDebug, format, args...) }

// Info logs a step outcome.
func Info(format string, args ...any) { logf(levelInfo, format, args...) }

// Warn logs a degraded path that did not stop the operation.
func Warn(format string, args ...any) { logf(levelWarn, format, args...) }

// Error logs a failure. Errors print even without --verbose.
func Error(format string, args ...any) { logf(levelError, format, args...) }

// Section starts a titled block of verbose output.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs the duration of a step at debug level.
//
//	defer logger.Timed("render pdf")()
func Timed(step string) func() {
	if !IsVerbose() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Debug("%s took %s", step, time.Since(start).Round(time.Millisecond))
	}
}
