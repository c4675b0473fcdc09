package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"attrib/attribution"
	"attrib/dataset"
	"attrib/reporting"
)

// PostgresStore backs the pipeline with PostgreSQL, the backend the
// attribution tables originally lived in.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects with a lib/pq DSN, verifies connectivity, and
// applies the schema.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply postgres schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgres wraps an existing connection. Used by tests to inject a
// mocked *sql.DB.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Version(ctx context.Context) (string, error) {
	var v string
	if err := s.db.QueryRowContext(ctx, `SELECT version()`).Scan(&v); err != nil {
		return "", fmt.Errorf("postgres version: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) Sessions(ctx context.Context) ([]dataset.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, user_id, channel_name, event_time, event_date,
		       holder_engagement, closer_engagement, impression_interaction
		FROM session_sources`)
	if err != nil {
		return nil, fmt.Errorf("query session_sources: %w", err)
	}
	defer rows.Close()

	var out []dataset.Session
	for rows.Next() {
		var sess dataset.Session
		var eventDate time.Time
		if err := rows.Scan(
			&sess.SessionID, &sess.UserID, &sess.ChannelName, &sess.EventTime, &eventDate,
			&sess.HolderEngagement, &sess.CloserEngagement, &sess.ImpressionInteraction,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.EventDate = eventDate.Format("2006-01-02")
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Costs(ctx context.Context) ([]dataset.SessionCost, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id, cost FROM session_costs`)
	if err != nil {
		return nil, fmt.Errorf("query session_costs: %w", err)
	}
	defer rows.Close()

	var out []dataset.SessionCost
	for rows.Next() {
		var c dataset.SessionCost
		if err := rows.Scan(&c.SessionID, &c.Cost); err != nil {
			return nil, fmt.Errorf("scan session cost: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Conversions(ctx context.Context) ([]dataset.Conversion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT conv_id, user_id, conv_time, revenue FROM conversions`)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var out []dataset.Conversion
	for rows.Next() {
		var cv dataset.Conversion
		if err := rows.Scan(&cv.ConvID, &cv.UserID, &cv.ConvTime, &cv.Revenue); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ReplaceCredits(ctx context.Context, credits []attribution.Credit) error {
	return s.replace(ctx, "attribution_customer_journey",
		`INSERT INTO attribution_customer_journey (conv_id, session_id, ihc) VALUES ($1, $2, $3)`,
		len(credits), func(i int) []any {
			c := credits[i]
			return []any{c.ConvID, c.SessionID, c.IHC}
		})
}

func (s *PostgresStore) ReplaceChannelReport(ctx context.Context, rs []reporting.Row) error {
	return s.replace(ctx, "channel_reporting",
		`INSERT INTO channel_reporting (channel_name, date, cost, ihc, ihc_revenue) VALUES ($1, $2, $3, $4, $5)`,
		len(rs), func(i int) []any {
			r := rs[i]
			return []any{r.ChannelName, r.Date, r.Cost, r.IHC, r.IHCRevenue}
		})
}

func (s *PostgresStore) replace(ctx context.Context, table, insert string, n int, args func(int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for i := 0; i < n; i++ {
		if _, err := tx.ExecContext(ctx, insert, args(i)...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

func (s *PostgresStore) InsertSessions(ctx context.Context, sessions []dataset.Session) error {
	for _, sess := range sessions {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO session_sources
			(session_id, user_id, channel_name, event_time, event_date,
			 holder_engagement, closer_engagement, impression_interaction)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sess.SessionID, sess.UserID, sess.ChannelName,
			sess.EventTime, sess.EventDate,
			sess.HolderEngagement, sess.CloserEngagement, sess.ImpressionInteraction,
		)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", sess.SessionID, err)
		}
	}
	return nil
}

func (s *PostgresStore) InsertCosts(ctx context.Context, costs []dataset.SessionCost) error {
	for _, c := range costs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO session_costs (session_id, cost) VALUES ($1, $2)`,
			c.SessionID, c.Cost,
		); err != nil {
			return fmt.Errorf("insert cost for session %s: %w", c.SessionID, err)
		}
	}
	return nil
}

func (s *PostgresStore) InsertConversions(ctx context.Context, conversions []dataset.Conversion) error {
	for _, cv := range conversions {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO conversions (conv_id, user_id, conv_time, revenue)
			VALUES ($1, $2, $3, $4)`,
			cv.ConvID, cv.UserID, cv.ConvTime, cv.Revenue,
		); err != nil {
			return fmt.Errorf("insert conversion %s: %w", cv.ConvID, err)
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
