package render

import (
	"database/sql"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tablejoin/core"
)

func sampleRecords() []core.CityRecord {
	return []core.CityRecord{
		{
			City:         "Paris",
			Country:      "France",
			Visitors:     sql.NullFloat64{Float64: 19.1, Valid: true},
			WikipediaURL: sql.NullString{String: "https://en.wikipedia.org/wiki/Paris", Valid: true},
			ImageURL:     sql.NullString{String: "https://example.com/images/paris.jpg", Valid: true},
		},
		{
			City:     "Dubai",
			Country:  "UAE",
			Visitors: sql.NullFloat64{Float64: 22800, Valid: true},
		},
		{
			City:    "Atlantis",
			Country: "Sea, Deep",
		},
	}
}

func TestCSVRenderer(t *testing.T) {
	data, err := NewCSVRenderer().Render(sampleRecords())
	require.NoError(t, err)

	want := "City,Country,Visitors (Millions),Wikipedia_URL,Image_URL\n" +
		"Paris,France,19.1,https://en.wikipedia.org/wiki/Paris,https://example.com/images/paris.jpg\n" +
		"Dubai,UAE,22800.0,,\n" +
		"Atlantis,\"Sea, Deep\",,,\n"
	assert.Equal(t, want, string(data))
}

func TestCSVRenderer_HeaderOnlyForNoRows(t *testing.T) {
	data, err := NewCSVRenderer().Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "City,Country,Visitors (Millions),Wikipedia_URL,Image_URL\n", string(data))
}

func TestFormatVisitors(t *testing.T) {
	assert.Equal(t, "19.1", FormatVisitors(sql.NullFloat64{Float64: 19.1, Valid: true}))
	assert.Equal(t, "22800.0", FormatVisitors(sql.NullFloat64{Float64: 22800, Valid: true}))
	assert.Equal(t, "0.5", FormatVisitors(sql.NullFloat64{Float64: 0.5, Valid: true}))
	assert.Equal(t, "inf", FormatVisitors(sql.NullFloat64{Float64: math.Inf(1), Valid: true}))
	assert.Equal(t, "", FormatVisitors(sql.NullFloat64{}))
}

func TestJSONRenderer_NullsForMissing(t *testing.T) {
	data, err := NewJSONRenderer().Render(sampleRecords())
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)

	assert.Equal(t, 19.1, got[0]["visitors_millions"])
	assert.Equal(t, "https://example.com/images/paris.jpg", got[0]["image_url"])
	assert.Nil(t, got[1]["wikipedia_url"])
	assert.Contains(t, got[2], "visitors_millions")
	assert.Nil(t, got[2]["visitors_millions"])
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(sampleRecords())
	require.NoError(t, err)

	md := string(data)
	assert.True(t, strings.HasPrefix(md, "|"), md)
	assert.Contains(t, md, "Country")
	assert.Contains(t, md, "France")
	assert.Contains(t, md, "Atlantis")
	assert.Len(t, strings.Split(strings.TrimSpace(md), "\n"), 5, "header, separator and three rows")
}

func TestPDFRenderer(t *testing.T) {
	data, err := NewPDFRenderer("Top Tourist Cities").Render(sampleRecords())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, ".csv", NewCSVRenderer().Extension())
	assert.Equal(t, ".json", NewJSONRenderer().Extension())
	assert.Equal(t, ".md", NewMarkdownRenderer().Extension())
	assert.Equal(t, ".pdf", NewPDFRenderer("").Extension())
}
