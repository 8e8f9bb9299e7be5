// Package render — CSV renderer.
// Writes a header row followed by one record per joined row, without an
// index column. Missing values become empty fields.
package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// CSVRenderer produces comma-separated output.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render serializes records as CSV.
func (r *CSVRenderer) Render(records []core.CityRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(core.Columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for i, rec := range records {
		if err := w.Write(fields(rec)); err != nil {
			return nil, fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}
