// Package fetch implements the Fetcher interface.
// A source is either an http(s) URL, a path to a local file, or empty,
// which selects the built-in "Top Tourist Cities" page.
package fetch

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/tablejoin/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tablejoin/1.0 (https://github.com/gaurav-prasanna/tablejoin)"

	// BuiltinSource names the embedded page in FetchResult.Source.
	BuiltinSource = "builtin:top-tourist-cities"
)

//go:embed pages/top_tourist_cities.html
var builtinPage string

// BuiltinPage returns the embedded sample page.
func BuiltinPage() string {
	return builtinPage
}

// SourceFetcher loads HTML from URLs, files or the built-in page.
type SourceFetcher struct {
	client *http.Client
}

// New creates a SourceFetcher with a sensible HTTP timeout.
func New() *SourceFetcher {
	return &SourceFetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithClient creates a SourceFetcher that uses client for URLs.
func NewWithClient(client *http.Client) *SourceFetcher {
	return &SourceFetcher{client: client}
}

// Fetch returns the HTML of source.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	switch {
	case source == "":
		return &core.FetchResult{Source: BuiltinSource, HTML: builtinPage}, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return f.fetchURL(ctx, source)
	default:
		return fetchFile(source)
	}
}

func (f *SourceFetcher) fetchURL(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:     url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

func fetchFile(path string) (*core.FetchResult, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &core.FetchResult{Source: path, HTML: string(body)}, nil
}
