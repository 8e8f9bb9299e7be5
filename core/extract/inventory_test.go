package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tablejoin/core/fetch"
)

func TestInventory_BuiltinPage(t *testing.T) {
	got := Inventory(mustParse(t, fetch.BuiltinPage()))

	require.Len(t, got, 3)
	assert.Equal(t, TableInfo{Index: 0, Selector: "table.tourism-stats", Caption: "Most Visited Cities", Rows: 4, Columns: 3}, got[0])
	assert.Equal(t, TableInfo{Index: 1, Selector: "table.city-references", Caption: "City References", Rows: 4, Columns: 2}, got[1])
	assert.Equal(t, TableInfo{Index: 2, Selector: "table.city-images", Caption: "City Images", Rows: 4, Columns: 2}, got[2])
}

func TestInventory_SelectorFallbacks(t *testing.T) {
	got := Inventory(mustParse(t, `
		<table id="main"><caption> Totals </caption><tr><td>1</td></tr></table>
		<table><tr><td>1</td><td>2</td></tr></table>`))

	require.Len(t, got, 2)
	assert.Equal(t, "table#main", got[0].Selector)
	assert.Equal(t, "Totals", got[0].Caption)
	assert.Equal(t, "body > table:nth-of-type(2)", got[1].Selector)
	assert.Equal(t, 2, got[1].Columns)
}

func TestInventory_SelectorsLocateTheirOwnTable(t *testing.T) {
	doc := mustParse(t, `
		<div><table><tr><td>a</td></tr></table></div>
		<div><table><tr><td>b</td></tr></table></div>
		<section id="extra">
			<p>note</p>
			<table class="dup"><tr><td>c</td></tr></table>
			<table class="dup"><tr><td>d</td></tr></table>
		</section>
		<table id="last"><tr><td>e</td></tr></table>`)

	got := Inventory(doc)
	require.Len(t, got, 5)
	assert.Equal(t, "body > div:nth-of-type(2) > table:nth-of-type(1)", got[1].Selector)
	assert.Equal(t, "section#extra > table:nth-of-type(2)", got[3].Selector)
	assert.Equal(t, "table#last", got[4].Selector)

	tables := doc.Root().Find("table")
	for _, info := range got {
		t.Run(info.Selector, func(t *testing.T) {
			spec := TableSpec{Name: "listed", Selector: info.Selector, Columns: []Column{{Name: "v", Kind: Text}}}
			tbl := locate(t, doc, spec)
			assert.Same(t, tables.Get(info.Index), tbl.sel.Get(0))
		})
	}
}
