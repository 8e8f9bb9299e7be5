package output

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/gaurav-prasanna/tablejoin/core"
)

var _ core.Sink = (*SQLiteSink)(nil)

// DefaultTable is the table SQLiteSink writes to when none is set.
const DefaultTable = "cities"

// SQLiteSink stores joined rows in a SQLite table. The table is
// recreated on every write so that repeated runs leave the same rows.
type SQLiteSink struct {
	Path  string
	Table string
}

// NewSQLiteSink creates a SQLiteSink for the database file at path.
func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{Path: path, Table: DefaultTable}
}

// Target returns the database file path.
func (s *SQLiteSink) Target() string {
	return s.Path
}

// Write replaces the table contents with records in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, records []core.CityRecord) error {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return &core.IOError{Path: s.Path, Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &core.IOError{Path: s.Path, Err: err}
	}
	defer tx.Rollback()

	table := quoteIdent(s.Table)
	stmts := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table),
		fmt.Sprintf(`CREATE TABLE %s (
			position          INTEGER PRIMARY KEY,
			city              TEXT NOT NULL,
			country           TEXT NOT NULL,
			visitors_millions REAL,
			wikipedia_url     TEXT,
			image_url         TEXT
		)`, table),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &core.IOError{Path: s.Path, Err: err}
		}
	}

	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (position, city, country, visitors_millions, wikipedia_url, image_url) VALUES (?, ?, ?, ?, ?, ?)`, table))
	if err != nil {
		return &core.IOError{Path: s.Path, Err: err}
	}
	defer insert.Close()

	for i, rec := range records {
		if _, err := insert.ExecContext(ctx, i+1, rec.City, rec.Country, rec.Visitors, rec.WikipediaURL, rec.ImageURL); err != nil {
			return &core.IOError{Path: s.Path, Err: fmt.Errorf("inserting row %d: %w", i+1, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &core.IOError{Path: s.Path, Err: err}
	}
	return nil
}

func quoteIdent(name string) string {
	out := []byte{'"'}
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			out = append(out, '"')
		}
		out = append(out, name[i])
	}
	return string(append(out, '"'))
}
