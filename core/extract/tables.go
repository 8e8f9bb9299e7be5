package extract

import (
	"iter"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// Default table layouts of the "Top Tourist Cities" page.
var (
	TourismTable = TableSpec{
		Name:     "tourism",
		Selector: "table.tourism-stats",
		Columns: []Column{
			{Name: "City", Kind: Text},
			{Name: "Country", Kind: Text},
			{Name: "Visitors (Millions)", Kind: Text},
		},
		SkipHeader: true,
	}

	ReferenceTable = TableSpec{
		Name:     "references",
		Selector: "table.city-references",
		Columns: []Column{
			{Name: "City", Kind: Text},
			{Name: "Wikipedia_URL", Kind: Link},
		},
		SkipHeader: true,
	}

	ImageTable = TableSpec{
		Name:     "images",
		Selector: "table.city-images",
		Columns: []Column{
			{Name: "City", Kind: Text},
			{Name: "Image_URL", Kind: Image},
		},
		SkipHeader: true,
	}
)

// WithSelector returns a copy of spec that locates its table with selector.
func (s TableSpec) WithSelector(selector string) TableSpec {
	s.Selector = selector
	return s
}

// TourismRows decodes records read with a TourismTable layout.
func TourismRows(records iter.Seq[Record]) []core.TourismRow {
	var rows []core.TourismRow
	for rec := range records {
		rows = append(rows, core.TourismRow{
			City:         rec[0].String,
			Country:      rec[1].String,
			VisitorsText: rec[2].String,
		})
	}
	return rows
}

// ReferenceRows decodes records read with a ReferenceTable layout.
func ReferenceRows(records iter.Seq[Record]) []core.ReferenceRow {
	var rows []core.ReferenceRow
	for rec := range records {
		rows = append(rows, core.ReferenceRow{City: rec[0].String, WikipediaURL: rec[1]})
	}
	return rows
}

// ImageRows decodes records read with an ImageTable layout.
func ImageRows(records iter.Seq[Record]) []core.ImageRow {
	var rows []core.ImageRow
	for rec := range records {
		rows = append(rows, core.ImageRow{City: rec[0].String, ImageURL: rec[1]})
	}
	return rows
}
