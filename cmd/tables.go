package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/tablejoin/core/extract"
	"github.com/gaurav-prasanna/tablejoin/core/fetch"
	"github.com/gaurav-prasanna/tablejoin/core/parse"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [source]",
	Short: "List the tables found in a page",
	Long: `Tables prints every <table> of the page with a selector usable in
--tourism-table, --references-table or --images-table, the nearest heading,
and its row and column counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	var source string
	if len(args) == 1 {
		source = args[0]
	}

	res, err := fetch.New().Fetch(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	doc, err := parse.Parse(res.HTML)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSELECTOR\tHEADING\tROWS\tCOLUMNS")
	for _, t := range extract.Inventory(doc) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", t.Index, t.Selector, t.Caption, t.Rows, t.Columns)
	}
	return w.Flush()
}
