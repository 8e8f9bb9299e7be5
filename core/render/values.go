package render

import (
	"database/sql"
	"math"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// FormatVisitors renders a visitors value the way the CSV has always
// carried it: shortest decimal form, integral values with a trailing ".0",
// missing as "".
func FormatVisitors(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	switch {
	case math.IsInf(v.Float64, 1):
		return "inf"
	case math.IsInf(v.Float64, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v.Float64, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// nullString renders a missing value as "".
func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

// fields returns the output cells of r, in core.Columns order.
func fields(r core.CityRecord) []string {
	return []string{
		r.City,
		r.Country,
		FormatVisitors(r.Visitors),
		nullString(r.WikipediaURL),
		nullString(r.ImageURL),
	}
}
