// Package debuglog writes opt-in structured widget events to a JSON-lines
// file. When disabled every call is a no-op.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed file name used by --debug.
const DefaultPath = "schedwidget-debug.log"

// Logger serializes entries with a sequence number and a timestamp.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	enabled bool
	seq     int
	now     func() time.Time
}

var (
	globalMu sync.Mutex
	global   = &Logger{}
)

// Init enables the package logger writing to path when enabled is true.
func Init(enabled bool, path string) error {
	if !enabled {
		setGlobal(&Logger{})
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	l := New(f)
	l.closer = f
	setGlobal(l)

	l.Log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// Close writes the end marker and closes the package logger's file.
func Close() {
	l := current()
	if !l.Enabled() {
		return
	}
	l.Log("DEBUG_END", map[string]any{"time": time.Now().Format(time.RFC3339)})
	if l.closer != nil {
		_ = l.closer.Close()
	}
	setGlobal(&Logger{})
}

// New returns an enabled logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, enabled: true, now: time.Now}
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled && l.w != nil
}

// Log writes one entry. The seq, ts and event keys always come from the
// logger, even when data carries them.
func (l *Logger) Log(event string, data map[string]any) {
	if !l.Enabled() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := make(map[string]any, len(data)+3)
	for k, v := range data {
		entry[k] = v
	}
	entry["seq"] = l.seq
	entry["ts"] = l.now().Format("15:04:05.000")
	entry["event"] = event

	b, err := json.Marshal(entry)
	if err != nil {
		b, _ = json.Marshal(map[string]any{"seq": l.seq, "event": event, "marshal_error": err.Error()})
	}
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// Error logs err under the given context.
func (l *Logger) Error(context string, err error) {
	if err == nil {
		return
	}
	l.Log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// Log writes an entry to the package logger.
func Log(event string, data map[string]any) {
	current().Log(event, data)
}

// Error logs an error to the package logger.
func Error(context string, err error) {
	current().Error(context, err)
}

// Default returns the package logger.
func Default() *Logger {
	return current()
}

func current() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}

func setGlobal(l *Logger) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}
