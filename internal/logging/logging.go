package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "amusing.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = DefaultPath()
)

// DefaultPath places the log next to the other per-user caches, falling back to
// the working directory when no cache directory is known.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return defaultLogFile
	}
	return filepath.Join(dir, defaultLogFile)
}

// Path returns the current log destination.
func Path() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}

// Error appends err to the log file.
func Error(err error) {
	if err == nil {
		return
	}

	f, ferr := open()
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", ferr)
		return
	}
	defer f.Close()

	logger := log.New(f, "", log.LstdFlags)
	logger.Println(err)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

func open() (*os.File, error) {
	traceMu.Lock()
	path := logPath
	traceMu.Unlock()
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
