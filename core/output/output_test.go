package output

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tablejoin/core"
	"github.com/gaurav-prasanna/tablejoin/core/render"
)

func records() []core.CityRecord {
	return []core.CityRecord{
		{
			City:         "Paris",
			Country:      "France",
			Visitors:     sql.NullFloat64{Float64: 19.1, Valid: true},
			WikipediaURL: sql.NullString{String: "https://en.wikipedia.org/wiki/Paris", Valid: true},
		},
		{City: "Dubai", Country: "UAE"},
	}
}

type failingRenderer struct{}

func (failingRenderer) Render([]core.CityRecord) ([]byte, error) { return nil, errors.New("boom") }
func (failingRenderer) Extension() string                         { return ".x" }

func TestFileSink_WritesRenderedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "final_city_data.csv")
	sink := NewFileSink(path, render.NewCSVRenderer())

	require.NoError(t, sink.Write(context.Background(), records()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "City,Country,Visitors (Millions),Wikipedia_URL,Image_URL\n"+
		"Paris,France,19.1,https://en.wikipedia.org/wiki/Paris,\n"+
		"Dubai,UAE,,,\n", string(data))
}

func TestFileSink_TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than the new output\n\n\n"), 0o644))

	require.NoError(t, NewFileSink(path, render.NewCSVRenderer()).Write(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "City,Country,Visitors (Millions),Wikipedia_URL,Image_URL\n", string(data))
}

func TestNewFileSink_AppendsExtension(t *testing.T) {
	sink := NewFileSink("out/final_city_data", render.NewJSONRenderer())
	assert.Equal(t, filepath.Join("out", "final_city_data.json"), sink.Path)
	assert.Equal(t, sink.Path, sink.Target())

	sink = NewFileSink("report.txt", render.NewJSONRenderer())
	assert.Equal(t, "report.txt", sink.Path)
}

func TestFileSink_UnwritablePathIsIOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewFileSink(filepath.Join(blocker, "out.csv"), render.NewCSVRenderer()).Write(context.Background(), records())
	require.Error(t, err)

	var ioErr *core.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, filepath.Join(blocker, "out.csv"), ioErr.Path)
}

func TestFileSink_RenderErrorIsNotIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.x")
	err := NewFileSink(path, failingRenderer{}).Write(context.Background(), records())
	require.Error(t, err)

	var ioErr *core.IOError
	assert.False(t, errors.As(err, &ioErr))
	assert.NoFileExists(t, path)
}

func TestSQLiteSink_ReplacesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.db")
	sink := NewSQLiteSink(path)
	ctx := context.Background()

	assert.Equal(t, path, sink.Target())
	require.NoError(t, sink.Write(ctx, records()))
	require.NoError(t, sink.Write(ctx, records()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cities`).Scan(&count))
	assert.Equal(t, 2, count)

	var (
		city     string
		visitors sql.NullFloat64
		wiki     sql.NullString
	)
	require.NoError(t, db.QueryRow(`SELECT city, visitors_millions, wikipedia_url FROM cities WHERE position = 2`).
		Scan(&city, &visitors, &wiki))
	assert.Equal(t, "Dubai", city)
	assert.False(t, visitors.Valid)
	assert.False(t, wiki.Valid)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"cities"`, quoteIdent("cities"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
