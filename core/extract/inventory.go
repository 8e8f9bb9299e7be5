package extract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/tablejoin/core/parse"
)

// TableInfo describes one <table> found in a document.
type TableInfo struct {
	Index    int
	Selector string
	Caption  string
	Rows     int
	Columns  int
}

// Inventory lists every table of doc in document order. Selector is built
// from the id or class attributes, or else from the table's position in
// the tree.
func Inventory(doc *parse.Document) []TableInfo {
	var out []TableInfo
	root := doc.Root()
	root.Find("table").Each(func(i int, s *goquery.Selection) {
		info := TableInfo{
			Index:    i,
			Selector: selectorFor(root, s),
			Caption:  captionFor(s),
			Rows:     s.Find("tr").Length(),
		}
		s.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if n := row.Find("td, th").Length(); n > info.Columns {
				info.Columns = n
			}
		})
		out = append(out, info)
	})
	return out
}

// selectorFor returns the id or class selector of s when it matches only
// s within root, and the positional path otherwise.
func selectorFor(root, s *goquery.Selection) string {
	var candidates []string
	if id, ok := s.Attr("id"); ok && id != "" {
		candidates = append(candidates, "table#"+id)
	}
	if class, ok := s.Attr("class"); ok {
		if fields := strings.Fields(class); len(fields) > 0 {
			candidates = append(candidates, "table."+strings.Join(fields, "."))
		}
	}
	for _, sel := range candidates {
		if m := root.Find(sel); m.Length() == 1 && m.IsSelection(s) {
			return sel
		}
	}
	return pathFor(s)
}

// pathFor builds a child-combinator path from the nearest ancestor with an
// id, or from <body>, down to s. Each step is positioned with
// :nth-of-type among its siblings so the path matches only s.
func pathFor(s *goquery.Selection) string {
	var steps []string
	for cur := s; cur.Length() > 0; cur = cur.Parent() {
		name := goquery.NodeName(cur)
		if id, ok := cur.Attr("id"); ok && id != "" && cur != s {
			steps = append(steps, name+"#"+id)
			break
		}
		if name == "html" || name == "body" {
			steps = append(steps, name)
			break
		}
		pos := cur.PrevAllFiltered(name).Length() + 1
		steps = append(steps, fmt.Sprintf("%s:nth-of-type(%d)", name, pos))
	}
	slices.Reverse(steps)
	return strings.Join(steps, " > ")
}

// captionFor prefers <caption>, then the nearest preceding heading.
func captionFor(s *goquery.Selection) string {
	if c := strings.TrimSpace(s.ChildrenFiltered("caption").First().Text()); c != "" {
		return c
	}
	return strings.TrimSpace(s.PrevAllFiltered("h1, h2, h3, h4, h5, h6").First().Text())
}
