// Package core defines the row types and stage interfaces for tablejoin.
// Each stage of the pipeline is a small, testable interface.
package core

import (
	"context"
	"database/sql"
)

// FetchResult holds the raw HTML of a loaded source document.
type FetchResult struct {
	Source     string
	StatusCode int
	HTML       string
}

// TourismRow is one row of the driving table.
// VisitorsText is the cell as extracted; Visitors is filled by the
// numeric normalizer and is invalid when the text could not be parsed.
type TourismRow struct {
	City         string
	Country      string
	VisitorsText string
	Visitors     sql.NullFloat64
}

// ReferenceRow links a city to its Wikipedia article.
type ReferenceRow struct {
	City         string
	WikipediaURL sql.NullString
}

// ImageRow links a city to an image source.
type ImageRow struct {
	City     string
	ImageURL sql.NullString
}

// CityRecord is one row of the joined output.
type CityRecord struct {
	City         string
	Country      string
	Visitors     sql.NullFloat64
	WikipediaURL sql.NullString
	ImageURL     sql.NullString
}

// Columns is the output header, in order.
var Columns = []string{"City", "Country", "Visitors (Millions)", "Wikipedia_URL", "Image_URL"}

// Fetcher loads the raw HTML of a source document.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Renderer converts joined records into a serialized output format.
type Renderer interface {
	Render(records []CityRecord) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".csv").
	Extension() string
}

// Sink persists joined records.
type Sink interface {
	Write(ctx context.Context, records []CityRecord) error
	// Target returns where records are written, e.g. the final file path.
	Target() string
}
