// Package render provides output renderers for the tablejoin pipeline.
// This file implements the Markdown renderer: the joined rows are laid out
// as an HTML table and converted with html-to-markdown's table plugin.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// MarkdownRenderer writes the joined rows as a Markdown table.
type MarkdownRenderer struct {
	conv *converter.Converter
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Render converts records into a Markdown table.
func (r *MarkdownRenderer) Render(records []core.CityRecord) ([]byte, error) {
	markdown, err := r.conv.ConvertString(tableHTML(records))
	if err != nil {
		return nil, fmt.Errorf("converting table to markdown: %w", err)
	}
	return []byte(strings.TrimSpace(markdown) + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// tableHTML lays records out as a <table> with a header row.
func tableHTML(records []core.CityRecord) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, col := range core.Columns {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(col))
	}
	b.WriteString("</tr></thead><tbody>")
	for _, rec := range records {
		b.WriteString("<tr>")
		for _, cell := range fields(rec) {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
