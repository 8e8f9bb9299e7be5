// Package extract pulls typed rows out of HTML tables.
// A table is located by CSS selector; the first row is treated as a header
// and rows with fewer <td> cells than declared columns are skipped.
package extract

import (
	"database/sql"
	"fmt"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/tablejoin/core"
	"github.com/gaurav-prasanna/tablejoin/core/parse"
)

// Kind selects how a cell value is read.
type Kind int

const (
	// Text is the trimmed text content of the cell.
	Text Kind = iota
	// Link is the href of the first <a> in the cell.
	Link
	// Image is the src of the first <img> in the cell.
	Image
)

// Column declares one extracted cell.
type Column struct {
	Name string
	Kind Kind
}

// TableSpec identifies a table and the cells to read from each row.
type TableSpec struct {
	Name       string
	Selector   string
	Columns    []Column
	SkipHeader bool
}

// HasHeaderRow reports whether the first <tr> of the table is dropped.
// The row is skipped whether or not it actually holds <th> cells.
func HasHeaderRow(spec TableSpec) bool {
	return spec.SkipHeader
}

// MinimumColumns is the number of <td> cells a row needs to be kept.
func MinimumColumns(spec TableSpec) int {
	return len(spec.Columns)
}

// Record holds one extracted row, one value per declared column.
// An invalid value means the link or image was absent.
type Record []sql.NullString

// Extractor locates tables in a parsed document.
type Extractor struct {
	log zerolog.Logger
}

// New creates an Extractor that reports skipped rows to log.
func New(log zerolog.Logger) *Extractor {
	return &Extractor{log: log}
}

// Table is a located table ready to be read.
type Table struct {
	spec    TableSpec
	sel     *goquery.Selection
	log     zerolog.Logger
	skipped int
}

// Locate finds the table matching spec.Selector. A missing table is a
// *core.TableNotFoundError; when several tables match, the first is used.
func (e *Extractor) Locate(doc *parse.Document, spec TableSpec) (*Table, error) {
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("table %q declares no columns", spec.Name)
	}

	matcher, err := cascadia.Compile(spec.Selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", spec.Selector, err)
	}

	matches := doc.Root().FindMatcher(matcher).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "table"
	})
	if matches.Length() == 0 {
		return nil, &core.TableNotFoundError{Name: spec.Name, Selector: spec.Selector}
	}
	if matches.Length() > 1 {
		e.log.Warn().
			Str("table", spec.Name).
			Int("matches", matches.Length()).
			Msg("selector matched several tables, using the first")
	}

	return &Table{spec: spec, sel: matches.First(), log: e.log}, nil
}

// Len returns the number of <tr> elements in the table, header included.
func (t *Table) Len() int {
	return t.sel.Find("tr").Length()
}

// Skipped returns how many rows were dropped for having too few cells.
// It is complete once Rows has been fully consumed.
func (t *Table) Skipped() int {
	return t.skipped
}

// Rows yields one Record per data row, in document order.
func (t *Table) Rows() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		t.skipped = 0
		minCols := MinimumColumns(t.spec)

		t.sel.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
			if i == 0 && HasHeaderRow(t.spec) {
				return true
			}

			cells := row.Find("td")
			if cells.Length() < minCols {
				t.skipped++
				t.log.Debug().
					Str("table", t.spec.Name).
					Int("row", i).
					Int("cells", cells.Length()).
					Int("want", minCols).
					Msg("skipping short row")
				return true
			}

			rec := make(Record, minCols)
			for c, col := range t.spec.Columns {
				rec[c] = readCell(cells.Eq(c), col.Kind)
			}
			return yield(rec)
		})
	}
}

// readCell reads a single value from a <td> according to kind.
func readCell(cell *goquery.Selection, kind Kind) sql.NullString {
	switch kind {
	case Link:
		return attrOf(cell.Find("a").First(), "href")
	case Image:
		return attrOf(cell.Find("img").First(), "src")
	default:
		return sql.NullString{String: strings.TrimSpace(cell.Text()), Valid: true}
	}
}

func attrOf(sel *goquery.Selection, name string) sql.NullString {
	if sel.Length() == 0 {
		return sql.NullString{}
	}
	val, ok := sel.Attr(name)
	return sql.NullString{String: val, Valid: ok}
}
