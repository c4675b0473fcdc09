// Package store provides relational access to the pipeline's input
// and output tables.
//
// The computation core never touches a connection directly: it reads
// through Provider and writes through Sink, so SQLite and Postgres
// backends are interchangeable and tests can swap in fakes.
package store

import (
	"context"
	"fmt"

	"attrib/attribution"
	"attrib/dataset"
	"attrib/reporting"
)

// Provider reads the three input tables. Retrieval is always a
// full-table read; the core does no filtering or pagination.
type Provider interface {
	Sessions(ctx context.Context) ([]dataset.Session, error)
	Costs(ctx context.Context) ([]dataset.SessionCost, error)
	Conversions(ctx context.Context) ([]dataset.Conversion, error)
}

// Sink writes the two output tables. Each write replaces the table's
// prior contents in one transaction; a failed run commits nothing.
type Sink interface {
	ReplaceCredits(ctx context.Context, credits []attribution.Credit) error
	ReplaceChannelReport(ctx context.Context, rows []reporting.Row) error
}

// Seeder loads input rows, used by the seed command to populate a
// store from CSV exports.
type Seeder interface {
	InsertSessions(ctx context.Context, sessions []dataset.Session) error
	InsertCosts(ctx context.Context, costs []dataset.SessionCost) error
	InsertConversions(ctx context.Context, conversions []dataset.Conversion) error
}

// Store is a full backend: provider, sink, and seeder over one
// connection.
type Store interface {
	Provider
	Sink
	Seeder

	// Version reports the backing server/library version, logged once
	// at startup as a connectivity check.
	Version(ctx context.Context) (string, error)
	Close() error
}

// Open connects to a backend by driver name ("sqlite" or "postgres")
// and applies the schema.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	}
	return nil, fmt.Errorf("unknown store driver %q (supported: sqlite, postgres)", driver)
}
