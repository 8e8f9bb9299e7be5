// Package cmd — extract command.
// This is the main command that runs the pipeline:
// fetch → parse → extract → normalize → join → write.
//
// It merges defaults, the config file and flags, then hands off to
// core/pipeline.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/tablejoin/config"
	"github.com/gaurav-prasanna/tablejoin/core/fetch"
	"github.com/gaurav-prasanna/tablejoin/core/pipeline"
)

// Flag variables.
var (
	flagOutput          string
	flagFormat          string
	flagBaseURL         string
	flagMissingTable    string
	flagTourismTable    string
	flagReferencesTable string
	flagImagesTable     string
)

var extractCmd = &cobra.Command{
	Use:   "extract [source]",
	Short: "Extract, join and write the city tables",
	Long: `Extract reads an HTML page (a URL, a file, or the built-in sample page when
no source is given), joins its tourism, reference and image tables on City and
writes the result.

Examples:
  tablejoin extract
  tablejoin extract page.html --output cities.csv
  tablejoin extract https://example.com/cities --format json
  tablejoin extract --format sqlite --output cities.db --missing-table empty`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	bindExtractFlags(extractCmd.Flags())
}

func bindExtractFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagOutput, "output", config.DefaultOutput, "Output path")
	fs.StringVar(&flagFormat, "format", config.FormatCSV, "Output format: csv, json, markdown, pdf or sqlite")
	fs.StringVar(&flagBaseURL, "base-url", config.DefaultBaseURL, "Base URL prefixed to root-relative image sources")
	fs.StringVar(&flagMissingTable, "missing-table", config.MissingTableFail, "Absent reference/image table: fail or empty")
	fs.StringVar(&flagTourismTable, "tourism-table", config.DefaultTourismSelector, "CSS selector of the tourism table")
	fs.StringVar(&flagReferencesTable, "references-table", config.DefaultRefSelector, "CSS selector of the references table")
	fs.StringVar(&flagImagesTable, "images-table", config.DefaultImagesSelector, "CSS selector of the images table")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags(), args)
	if err != nil {
		return err
	}
	// The config file may turn on verbose logging after PersistentPreRun.
	setupLogging(cmd.ErrOrStderr(), cfg.Verbose)

	sink, err := pipeline.SinkFor(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, fetch.New(), sink, log.Logger)
	if err != nil {
		return err
	}

	stats, err := p.Run(cmd.Context(), cfg.Source)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s (%d rows)\n", sink.Target(), stats.OutputRows)
	return nil
}

// loadConfig layers defaults, the --config file and explicitly set flags.
func loadConfig(fs *pflag.FlagSet, args []string) (config.Config, error) {
	cfg := config.Default()

	if flagConfig != "" {
		fc, err := config.Load(flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("loading config: %w", err)
		}
		cfg.Apply(fc)
	}

	overrides := map[string]*string{
		"output":           &cfg.Output,
		"format":           &cfg.Format,
		"base-url":         &cfg.BaseURL,
		"missing-table":    &cfg.MissingTable,
		"tourism-table":    &cfg.Tables.Tourism,
		"references-table": &cfg.Tables.References,
		"images-table":     &cfg.Tables.Images,
	}
	for name, dst := range overrides {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if len(args) == 1 {
		cfg.Source = args[0]
	}

	cfg.ResolveOutput()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
