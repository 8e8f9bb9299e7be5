// Package render — JSON renderer.
// Emits the joined rows as an array of objects; missing values are null.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// cityJSON is the JSON shape of one joined row.
type cityJSON struct {
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Visitors     *float64 `json:"visitors_millions"`
	WikipediaURL *string  `json:"wikipedia_url"`
	ImageURL     *string  `json:"image_url"`
}

// JSONRenderer produces indented JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts records into a JSON array.
func (r *JSONRenderer) Render(records []core.CityRecord) ([]byte, error) {
	out := make([]cityJSON, 0, len(records))
	for _, rec := range records {
		row := cityJSON{City: rec.City, Country: rec.Country}
		if rec.Visitors.Valid {
			v := rec.Visitors.Float64
			row.Visitors = &v
		}
		if rec.WikipediaURL.Valid {
			s := rec.WikipediaURL.String
			row.WikipediaURL = &s
		}
		if rec.ImageURL.Valid {
			s := rec.ImageURL.String
			row.ImageURL = &s
		}
		out = append(out, row)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
