package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"attrib/attribution"
	"attrib/dataset"
	"attrib/reporting"
)

// SQLiteStore backs the pipeline with a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and
// applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Version(ctx context.Context) (string, error) {
	var v string
	if err := s.db.QueryRowContext(ctx, `SELECT sqlite_version()`).Scan(&v); err != nil {
		return "", fmt.Errorf("sqlite version: %w", err)
	}
	return "SQLite " + v, nil
}

func (s *SQLiteStore) Sessions(ctx context.Context) ([]dataset.Session, error) {
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
		var eventTime, eventDate string
		if err := rows.Scan(
			&sess.SessionID, &sess.UserID, &sess.ChannelName, &eventTime, &eventDate,
			&sess.HolderEngagement, &sess.CloserEngagement, &sess.ImpressionInteraction,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if sess.EventTime, err = dataset.ParseTime(eventTime); err != nil {
			return nil, fmt.Errorf("session %s: event_time: %w", sess.SessionID, err)
		}
		if sess.EventDate, err = dataset.ParseDate(eventDate); err != nil {
			return nil, fmt.Errorf("session %s: event_date: %w", sess.SessionID, err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Costs(ctx context.Context) ([]dataset.SessionCost, error) {
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

func (s *SQLiteStore) Conversions(ctx context.Context) ([]dataset.Conversion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT conv_id, user_id, conv_time, revenue FROM conversions`)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var out []dataset.Conversion
	for rows.Next() {
		var cv dataset.Conversion
		var convTime string
		if err := rows.Scan(&cv.ConvID, &cv.UserID, &convTime, &cv.Revenue); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		if cv.ConvTime, err = dataset.ParseTime(convTime); err != nil {
			return nil, fmt.Errorf("conversion %s: conv_time: %w", cv.ConvID, err)
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ReplaceCredits(ctx context.Context, credits []attribution.Credit) error {
	return s.replace(ctx, "attribution_customer_journey",
		`INSERT INTO attribution_customer_journey (conv_id, session_id, ihc) VALUES (?, ?, ?)`,
		len(credits), func(i int) []any {
			c := credits[i]
			return []any{c.ConvID, c.SessionID, c.IHC}
		})
}

func (s *SQLiteStore) ReplaceChannelReport(ctx context.Context, rs []reporting.Row) error {
	return s.replace(ctx, "channel_reporting",
		`INSERT INTO channel_reporting (channel_name, date, cost, ihc, ihc_revenue) VALUES (?, ?, ?, ?, ?)`,
		len(rs), func(i int) []any {
			r := rs[i]
			return []any{r.ChannelName, r.Date, r.Cost, r.IHC, r.IHCRevenue}
		})
}

// replace swaps a table's contents for n freshly inserted rows inside
// one transaction. Last run wins; readers never see a half-written
// table.
func (s *SQLiteStore) replace(ctx context.Context, table, insert string, n int, args func(int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStore) InsertSessions(ctx context.Context, sessions []dataset.Session) error {
	for _, sess := range sessions {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO session_sources
			(session_id, user_id, channel_name, event_time, event_date,
			 holder_engagement, closer_engagement, impression_interaction)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.SessionID, sess.UserID, sess.ChannelName,
			sess.EventTime.Format("2006-01-02 15:04:05"), sess.EventDate,
			sess.HolderEngagement, sess.CloserEngagement, sess.ImpressionInteraction,
		)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", sess.SessionID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertCosts(ctx context.Context, costs []dataset.SessionCost) error {
	for _, c := range costs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO session_costs (session_id, cost) VALUES (?, ?)`,
			c.SessionID, c.Cost,
		); err != nil {
			return fmt.Errorf("insert cost for session %s: %w", c.SessionID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertConversions(ctx context.Context, conversions []dataset.Conversion) error {
	for _, cv := range conversions {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO conversions (conv_id, user_id, conv_time, revenue)
			VALUES (?, ?, ?, ?)`,
			cv.ConvID, cv.UserID, cv.ConvTime.Format("2006-01-02 15:04:05"), cv.Revenue,
		); err != nil {
			return fmt.Errorf("insert conversion %s: %w", cv.ConvID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
