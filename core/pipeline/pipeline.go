// Package pipeline runs tablejoin end to end:
// fetch → parse → extract → normalize → join → write.
//
// Fatal errors are wrapped with the stage that produced them. Short rows,
// unparsable numbers and join misses never stop a run; they are logged and
// counted in Stats.
package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/tablejoin/config"
	"github.com/gaurav-prasanna/tablejoin/core"
	"github.com/gaurav-prasanna/tablejoin/core/extract"
	"github.com/gaurav-prasanna/tablejoin/core/join"
	"github.com/gaurav-prasanna/tablejoin/core/normalize"
	"github.com/gaurav-prasanna/tablejoin/core/output"
	"github.com/gaurav-prasanna/tablejoin/core/parse"
	"github.com/gaurav-prasanna/tablejoin/core/render"
)

// Stats summarizes one run.
type Stats struct {
	Source           string
	Title            string
	TourismRows      int
	ReferenceRows    int
	ImageRows        int
	SkippedRows      int
	CoercionFailures int
	ReferenceMisses  int
	ImageMisses      int
	OutputRows       int
}

// Pipeline holds the configured stages.
type Pipeline struct {
	fetcher   core.Fetcher
	sink      core.Sink
	extractor *extract.Extractor
	joiner    *join.Joiner
	urls      *normalize.URLNormalizer

	tourism    extract.TableSpec
	references extract.TableSpec
	images     extract.TableSpec

	allowMissingSecondary bool
	log                   zerolog.Logger
}

// New builds a Pipeline from cfg. cfg must already be valid.
func New(cfg config.Config, fetcher core.Fetcher, sink core.Sink, log zerolog.Logger) (*Pipeline, error) {
	urls, err := normalize.NewURLNormalizer(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		fetcher:               fetcher,
		sink:                  sink,
		extractor:             extract.New(log),
		joiner:                join.New(log),
		urls:                  urls,
		tourism:               extract.TourismTable.WithSelector(cfg.Tables.Tourism),
		references:            extract.ReferenceTable.WithSelector(cfg.Tables.References),
		images:                extract.ImageTable.WithSelector(cfg.Tables.Images),
		allowMissingSecondary: cfg.MissingTable == config.MissingTableEmpty,
		log:                   log,
	}, nil
}

// Run loads source, transforms it and writes the result to the sink.
func (p *Pipeline) Run(ctx context.Context, source string) (Stats, error) {
	res, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return Stats{}, fmt.Errorf("fetch: %w", err)
	}

	records, stats, err := p.Process(res.HTML)
	stats.Source = res.Source
	if err != nil {
		return stats, err
	}

	if err := p.sink.Write(ctx, records); err != nil {
		return stats, fmt.Errorf("write: %w", err)
	}

	p.log.Info().
		Str("source", stats.Source).
		Int("rows", stats.OutputRows).
		Int("skipped", stats.SkippedRows).
		Int("coercion_failures", stats.CoercionFailures).
		Int("reference_misses", stats.ReferenceMisses).
		Int("image_misses", stats.ImageMisses).
		Msg("pipeline complete")
	return stats, nil
}

// Process parses markup and returns the joined records without writing them.
func (p *Pipeline) Process(markup string) ([]core.CityRecord, Stats, error) {
	var stats Stats

	doc, err := parse.Parse(markup)
	if err != nil {
		return nil, stats, fmt.Errorf("parse: %w", err)
	}
	stats.Title = doc.Title()

	// 1. Driving table; always required.
	tbl, err := p.extractor.Locate(doc, p.tourism)
	if err != nil {
		return nil, stats, fmt.Errorf("extract %s: %w", p.tourism.Name, err)
	}
	tourism := extract.TourismRows(tbl.Rows())
	stats.SkippedRows += tbl.Skipped()
	p.log.Debug().Str("table", p.tourism.Name).Int("tr", tbl.Len()).Int("rows", len(tourism)).Msg("table read")

	// 2. Visitors column to numbers.
	texts := make([]string, len(tourism))
	for i, r := range tourism {
		texts[i] = r.VisitorsText
	}
	for i, v := range normalize.Numbers(texts) {
		tourism[i].Visitors = v
		if !v.Valid {
			stats.CoercionFailures++
			p.log.Warn().Str("city", tourism[i].City).Str("value", texts[i]).Msg("visitors is not numeric")
		}
	}

	// 3. Secondary tables.
	var refs []core.ReferenceRow
	if tbl, err = p.locateSecondary(doc, p.references); err != nil {
		return nil, stats, err
	}
	if tbl != nil {
		refs = extract.ReferenceRows(tbl.Rows())
		stats.SkippedRows += tbl.Skipped()
	}

	var images []core.ImageRow
	if tbl, err = p.locateSecondary(doc, p.images); err != nil {
		return nil, stats, err
	}
	if tbl != nil {
		images = extract.ImageRows(tbl.Rows())
		stats.SkippedRows += tbl.Skipped()
	}

	// 4. Image sources to absolute URLs.
	raw := make([]sql.NullString, len(images))
	for i, img := range images {
		raw[i] = img.ImageURL
	}
	srcs := make([]core.ImageRow, len(images))
	for i, u := range p.urls.AbsolutizeAll(raw) {
		srcs[i] = core.ImageRow{City: images[i].City, ImageURL: u}
	}
	p.log.Debug().Str("base", p.urls.Base()).Int("images", len(srcs)).Msg("image URLs absolutized")

	// 5. Join.
	records, joinStats := p.joiner.Join(tourism, refs, srcs)

	stats.TourismRows = len(tourism)
	stats.ReferenceRows = len(refs)
	stats.ImageRows = len(images)
	stats.ReferenceMisses = joinStats.ReferenceMisses
	stats.ImageMisses = joinStats.ImageMisses
	stats.OutputRows = len(records)

	p.log.Debug().
		Int("tourism", stats.TourismRows).
		Int("references", stats.ReferenceRows).
		Int("images", stats.ImageRows).
		Msg("tables extracted")
	return records, stats, nil
}

// locateSecondary finds a reference or image table. With the "empty"
// policy an absent table yields (nil, nil).
func (p *Pipeline) locateSecondary(doc *parse.Document, spec extract.TableSpec) (*extract.Table, error) {
	tbl, err := p.extractor.Locate(doc, spec)
	if err == nil {
		return tbl, nil
	}

	var notFound *core.TableNotFoundError
	if p.allowMissingSecondary && errors.As(err, &notFound) {
		p.log.Warn().Str("table", spec.Name).Str("selector", spec.Selector).Msg("table not found, treating as empty")
		return nil, nil
	}
	return nil, fmt.Errorf("extract %s: %w", spec.Name, err)
}

// SinkFor returns the sink for cfg.Format writing to cfg.Output.
func SinkFor(cfg config.Config) (core.Sink, error) {
	switch cfg.Format {
	case config.FormatCSV:
		return output.NewFileSink(cfg.Output, render.NewCSVRenderer()), nil
	case config.FormatJSON:
		return output.NewFileSink(cfg.Output, render.NewJSONRenderer()), nil
	case config.FormatMarkdown:
		return output.NewFileSink(cfg.Output, render.NewMarkdownRenderer()), nil
	case config.FormatPDF:
		return output.NewFileSink(cfg.Output, render.NewPDFRenderer("City data")), nil
	case config.FormatSQLite:
		return output.NewSQLiteSink(cfg.Output), nil
	default:
		return nil, fmt.Errorf("no sink for format %q", cfg.Format)
	}
}
