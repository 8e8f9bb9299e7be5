// Package parse turns raw markup into a read-only document tree.
package parse

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/tablejoin/core"
)

var errEmptyDocument = errors.New("document is empty")

// Document is a parsed HTML page. Callers must not mutate the selection
// returned by Root.
type Document struct {
	doc *goquery.Document
}

// Root returns the selection at the top of the tree.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Title returns the trimmed <title> text, or "" when absent.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("head > title").First().Text())
}

// Parse builds a Document from markup. Errors are *core.ParseError.
func Parse(markup string) (*Document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, &core.ParseError{Err: errEmptyDocument}
	}

	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &core.ParseError{Err: err}
	}

	return &Document{doc: goquery.NewDocumentFromNode(node)}, nil
}
