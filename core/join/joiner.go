// Package join combines the tourism, reference and image row-sets.
// Two left-outer joins are applied in sequence on the trimmed City value.
// Every driving row survives, in its original order.
package join

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// Stats counts driving rows without a match in each secondary table.
type Stats struct {
	ReferenceMisses int
	ImageMisses     int
}

// Joiner performs the left-outer joins.
type Joiner struct {
	log zerolog.Logger
}

// New creates a Joiner that reports unmatched keys to log.
func New(log zerolog.Logger) *Joiner {
	return &Joiner{log: log}
}

// Key is the join key for a city: surrounding whitespace is ignored,
// case is not.
func Key(city string) string {
	return strings.TrimSpace(city)
}

// index groups rows by key, keeping row order within each key.
type index[T any] map[string][]T

func buildIndex[T any](rows []T, city func(T) string) index[T] {
	idx := make(index[T], len(rows))
	for _, r := range rows {
		k := Key(city(r))
		idx[k] = append(idx[k], r)
	}
	return idx
}

// leftJoin pairs each left row with every matching right row, or with a
// single zero-value right row when there is none.
func leftJoin[L, R any](left []L, leftCity func(L) string, right index[R], onMiss func(L)) []pair[L, R] {
	out := make([]pair[L, R], 0, len(left))
	for _, l := range left {
		matches := right[Key(leftCity(l))]
		if len(matches) == 0 {
			onMiss(l)
			var zero R
			out = append(out, pair[L, R]{left: l, right: zero})
			continue
		}
		for _, r := range matches {
			out = append(out, pair[L, R]{left: l, right: r})
		}
	}
	return out
}

type pair[L, R any] struct {
	left  L
	right R
}

// Join returns tourism ⟕ refs ⟕ images. Unmatched WikipediaURL and
// ImageURL are left invalid. When a secondary table holds a key more than
// once, the driving row is repeated once per match.
func (j *Joiner) Join(tourism []core.TourismRow, refs []core.ReferenceRow, images []core.ImageRow) ([]core.CityRecord, Stats) {
	var stats Stats

	refIdx := buildIndex(refs, func(r core.ReferenceRow) string { return r.City })
	imgIdx := buildIndex(images, func(r core.ImageRow) string { return r.City })

	first := leftJoin(tourism, func(t core.TourismRow) string { return t.City }, refIdx, func(t core.TourismRow) {
		stats.ReferenceMisses++
		j.log.Debug().Str("city", t.City).Str("table", "references").Msg("no matching row")
	})

	withRef := make([]core.CityRecord, len(first))
	for i, p := range first {
		withRef[i] = core.CityRecord{
			City:         p.left.City,
			Country:      p.left.Country,
			Visitors:     p.left.Visitors,
			WikipediaURL: p.right.WikipediaURL,
		}
	}

	second := leftJoin(withRef, func(r core.CityRecord) string { return r.City }, imgIdx, func(r core.CityRecord) {
		stats.ImageMisses++
		j.log.Debug().Str("city", r.City).Str("table", "images").Msg("no matching row")
	})

	out := make([]core.CityRecord, len(second))
	for i, p := range second {
		rec := p.left
		rec.ImageURL = p.right.ImageURL
		out[i] = rec
	}
	return out, stats
}
