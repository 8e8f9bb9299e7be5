package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_EmptySourceUsesBuiltinPage(t *testing.T) {
	res, err := New().Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, BuiltinSource, res.Source)
	assert.Contains(t, res.HTML, `<table class="tourism-stats">`)
	assert.Contains(t, res.HTML, `<table class="city-references">`)
	assert.Contains(t, res.HTML, `<table class="city-images">`)
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>hi</p>"), 0o644))

	res, err := New().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, "<p>hi</p>", res.HTML)
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := New().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte("<table></table>"))
	}))
	defer srv.Close()

	res, err := NewWithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "<table></table>", res.HTML)
}

func TestFetch_URLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewWithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}
