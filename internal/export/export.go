// Package export delivers calendar files produced by the widget: to disk,
// to the system clipboard, or to HTTP clients of a small download server.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrInvalidFilename is returned for names that would escape the target
// directory.
var ErrInvalidFilename = errors.New("invalid export filename")

// Exporter receives a calendar file.
type Exporter interface {
	Export(filename string, content []byte) error
}

// File writes exports into Dir, creating it when needed.
type File struct {
	Dir string

	// Written is the path of the last successful export.
	Written string
}

// Export writes content to Dir/filename.
func (f *File) Export(filename string, content []byte) error {
	if err := checkFilename(filename); err != nil {
		return err
	}

	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	f.Written = path
	exportsTotal.WithLabelValues("file", "ok").Inc()
	return nil
}

// Clipboard copies the calendar text to the system clipboard.
type Clipboard struct {
	// write replaces the clipboard call in tests.
	write func(string) error
}

// Export copies content to the clipboard. The filename is ignored.
func (c Clipboard) Export(_ string, content []byte) error {
	write := c.write
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(string(content)); err != nil {
		exportsTotal.WithLabelValues("clipboard", "error").Inc()
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	exportsTotal.WithLabelValues("clipboard", "ok").Inc()
	return nil
}

// Multi fans an export out to several exporters and joins their errors.
type Multi []Exporter

// Export calls every exporter, even after a failure.
func (m Multi) Export(filename string, content []byte) error {
	var errs []error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Export(filename, content); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}
