package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/symld/symld/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// Verbosity levels for log output. Warnings are always emitted unless
// the level is Quiet; Verbose additionally emits per-object trace
// lines during linking and pruning.
const (
	Quiet = iota
	Normal
	Verbose
)

// verbosity holds the current log level (set by main from -l/-q)
var verbosity = Normal

// logOutput is the writer for warnings and trace output (defaults to stderr)
var logOutput io.Writer = os.Stderr

// logFile holds the open file handle if log output goes to a file
var logFile *os.File

// logMutex protects access to log output
var logMutex sync.Mutex

// SetVerbosity sets the log level
func SetVerbosity(level int) {
	logMutex.Lock()
	defer logMutex.Unlock()
	verbosity = level
}

// SetOutput sets a custom writer for warnings and trace output.
// Pass nil to discard all log output.
func SetOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logOutput = w
}

// InitLogFile redirects warnings and trace output to path, creating or
// truncating it. Call CloseLog when done to ensure the file is
// properly closed.
func InitLogFile(path string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	logFile = file
	logOutput = file
	return nil
}

// CloseLog closes the log file if one is open and restores output to
// stderr.
func CloseLog() error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logOutput = os.Stderr
		return err
	}
	return nil
}

// IsDebugEnabled returns true if debug mode is enabled
func IsDebugEnabled() bool {
	// Check build flag first
	if EnableDebug == "true" {
		return true
	}

	// Allow runtime override via environment variable
	if os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true" {
		return true
	}

	return false
}

// getLogWriter returns the writer for log output, or nil if none is configured
func getLogWriter() io.Writer {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logOutput
}

func level() int {
	logMutex.Lock()
	defer logMutex.Unlock()
	return verbosity
}

// Warnf emits a warning to the log writer unless the level is Quiet
func Warnf(format string, args ...interface{}) {
	if level() <= Quiet {
		return
	}
	w := getLogWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}

// Infof emits an informational line to the log writer unless the level is Quiet
func Infof(format string, args ...interface{}) {
	if level() <= Quiet {
		return
	}
	w := getLogWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Verbosef emits a trace line only at the Verbose level
func Verbosef(format string, args ...interface{}) {
	if level() < Verbose {
		return
	}
	w := getLogWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Printf prints debug information only when debug mode is enabled
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getLogWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG] "+format, args...)
}

// Println prints debug information only when debug mode is enabled
func Println(args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getLogWriter()
	if w == nil {
		return
	}
	fmt.Fprint(w, "[DEBUG] ")
	fmt.Fprintln(w, args...)
}

// Log provides structured debug logging with component names
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getLogWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format, append([]interface{}{component}, args...)...)
}

// LogIngest provides debug logging specifically for ingest operations
func LogIngest(format string, args ...interface{}) {
	Log("INGEST", format, args...)
}

// LogLink provides debug logging specifically for link-set operations
func LogLink(format string, args ...interface{}) {
	Log("LINK", format, args...)
}
