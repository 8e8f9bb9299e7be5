// Package output persists joined rows.
// FileSink renders rows and writes them to a single file; SQLiteSink
// stores them in a table of a SQLite database.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/tablejoin/core"
)

var _ core.Sink = (*FileSink)(nil)

// FileSink writes rendered output to disk.
type FileSink struct {
	Path     string
	Renderer core.Renderer
}

// NewFileSink creates a FileSink targeting path. If path has no
// extension, the renderer's extension is appended.
func NewFileSink(path string, renderer core.Renderer) *FileSink {
	if filepath.Ext(path) == "" {
		path += renderer.Extension()
	}
	return &FileSink{Path: path, Renderer: renderer}
}

// Target returns the path written to, extension included.
func (s *FileSink) Target() string {
	return s.Path
}

// Write renders records and replaces the file contents. Write failures
// are *core.IOError.
func (s *FileSink) Write(_ context.Context, records []core.CityRecord) error {
	data, err := s.Renderer.Render(records)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return writeFile(s.Path, data)
}

// writeFile creates or truncates path and writes data. The file is closed
// on every path; a failed close is reported like a failed write.
func writeFile(path string, data []byte) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			return &core.IOError{Path: path, Err: mkErr}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return &core.IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &core.IOError{Path: path, Err: cerr}
		}
	}()

	if _, err := f.Write(data); err != nil {
		return &core.IOError{Path: path, Err: err}
	}
	return nil
}
