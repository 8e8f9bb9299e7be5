// Package normalize cleans extracted cell values.
// Numeric text becomes floats, tolerating thousands separators, and
// root-relative image paths become absolute URLs under a configured base.
// Neither step ever drops a value: failures become the missing marker.
package normalize

import (
	"database/sql"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// thousandsSeparator is removed before numeric parsing.
const thousandsSeparator = ","

// ParseNumber converts s to a float. Unparsable text, and a literal NaN,
// yield an invalid value rather than an error.
func ParseNumber(s string) sql.NullFloat64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, thousandsSeparator, ""))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// Numbers applies ParseNumber to each value, preserving length and order.
func Numbers(values []string) []sql.NullFloat64 {
	out := make([]sql.NullFloat64, len(values))
	for i, v := range values {
		out[i] = ParseNumber(v)
	}
	return out
}

// URLNormalizer rewrites root-relative URLs against a base.
type URLNormalizer struct {
	base string
}

// NewURLNormalizer creates a URLNormalizer. base must be an absolute URL
// with scheme and host; a trailing slash is dropped so that prefixing
// "/images/x.jpg" does not produce a double slash.
func NewURLNormalizer(base string) (*URLNormalizer, error) {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q (must include scheme, e.g. https://example.com)", base)
	}
	return &URLNormalizer{base: strings.TrimSuffix(base, "/")}, nil
}

// Base returns the base URL used as prefix.
func (n *URLNormalizer) Base() string {
	return n.base
}

// Absolutize prefixes v with the base when it starts with "/".
// Missing values and all other strings pass through unchanged.
func (n *URLNormalizer) Absolutize(v sql.NullString) sql.NullString {
	if !v.Valid {
		return v
	}
	if strings.HasPrefix(v.String, "/") {
		return sql.NullString{String: n.base + v.String, Valid: true}
	}
	return v
}

// AbsolutizeAll applies Absolutize to each value, preserving length and order.
func (n *URLNormalizer) AbsolutizeAll(values []sql.NullString) []sql.NullString {
	out := make([]sql.NullString, len(values))
	for i, v := range values {
		out[i] = n.Absolutize(v)
	}
	return out
}
