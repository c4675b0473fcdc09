package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"attrib/dataset"
)

// SeedFiles names the CSV exports to load into a fresh store. Empty
// paths are skipped.
type SeedFiles struct {
	Conversions string
	Sessions    string
	Costs       string
}

// SeedStats counts what a seed run loaded.
type SeedStats struct {
	Conversions int
	Sessions    int
	Costs       int
}

// Seed loads the input tables from CSV exports.
func Seed(ctx context.Context, s Seeder, files SeedFiles) (SeedStats, error) {
	var stats SeedStats

	if files.Conversions != "" {
		convs, err := readConversionsCSV(files.Conversions)
		if err != nil {
			return stats, err
		}
		if err := s.InsertConversions(ctx, convs); err != nil {
			return stats, err
		}
		stats.Conversions = len(convs)
	}
	if files.Sessions != "" {
		sessions, err := readSessionsCSV(files.Sessions)
		if err != nil {
			return stats, err
		}
		if err := s.InsertSessions(ctx, sessions); err != nil {
			return stats, err
		}
		stats.Sessions = len(sessions)
	}
	if files.Costs != "" {
		costs, err := readCostsCSV(files.Costs)
		if err != nil {
			return stats, err
		}
		if err := s.InsertCosts(ctx, costs); err != nil {
			return stats, err
		}
		stats.Costs = len(costs)
	}
	return stats, nil
}

func readConversionsCSV(path string) ([]dataset.Conversion, error) {
	var out []dataset.Conversion
	err := eachRecord(path, []string{"conv_id", "user_id", "conv_time", "revenue"},
		func(line int, rec []string) error {
			cv := dataset.Conversion{ConvID: rec[0], UserID: rec[1]}
			var err error
			if cv.ConvTime, err = dataset.ParseTime(rec[2]); err != nil {
				return fmt.Errorf("line %d: conv_time: %w", line, err)
			}
			if cv.Revenue, err = strconv.ParseFloat(strings.TrimSpace(rec[3]), 64); err != nil {
				return fmt.Errorf("line %d: bad revenue %q: %w", line, rec[3], err)
			}
			out = append(out, cv)
			return nil
		})
	return out, err
}

func readSessionsCSV(path string) ([]dataset.Session, error) {
	header := []string{
		"session_id", "user_id", "channel_name", "event_time", "event_date",
		"holder_engagement", "closer_engagement", "impression_interaction",
	}
	var out []dataset.Session
	err := eachRecord(path, header, func(line int, rec []string) error {
		sess := dataset.Session{SessionID: rec[0], UserID: rec[1], ChannelName: rec[2]}
		var err error
		if sess.EventTime, err = dataset.ParseTime(rec[3]); err != nil {
			return fmt.Errorf("line %d: event_time: %w", line, err)
		}
		if sess.EventDate, err = dataset.ParseDate(rec[4]); err != nil {
			return fmt.Errorf("line %d: event_date: %w", line, err)
		}
		flags := []*bool{&sess.HolderEngagement, &sess.CloserEngagement, &sess.ImpressionInteraction}
		for i, dst := range flags {
			v, err := parseBoolFlag(rec[5+i])
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", line, header[5+i], err)
			}
			*dst = v
		}
		out = append(out, sess)
		return nil
	})
	return out, err
}

func readCostsCSV(path string) ([]dataset.SessionCost, error) {
	var out []dataset.SessionCost
	err := eachRecord(path, []string{"session_id", "cost"},
		func(line int, rec []string) error {
			c := dataset.SessionCost{SessionID: rec[0]}
			// Empty cost cells are legitimate: the session has no
			// recorded spend and lands as NULL.
			if v := strings.TrimSpace(rec[1]); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return fmt.Errorf("line %d: bad cost %q: %w", line, rec[1], err)
				}
				c.Cost = sql.NullFloat64{Float64: f, Valid: true}
			}
			out = append(out, c)
			return nil
		})
	return out, err
}

// eachRecord streams a headered CSV, validating the header columns and
// handing each data record to fn with its line number.
func eachRecord(path string, header []string, fn func(line int, rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	got, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("%s: missing header", path)
	}
	if err != nil {
		return fmt.Errorf("%s: read header: %w", path, err)
	}
	if len(got) < len(header) {
		return fmt.Errorf("%s: bad header %v", path, got)
	}
	for i, want := range header {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want) {
			return fmt.Errorf("%s: header column %q, want %q", path, got[i], want)
		}
	}

	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: read row: %w", path, err)
		}
		if len(rec) < len(header) {
			return fmt.Errorf("%s line %d: short row %v", path, line, rec)
		}
		if err := fn(line, rec); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
}

func parseBoolFlag(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "t":
		return true, nil
	case "0", "false", "f", "":
		return false, nil
	}
	return false, fmt.Errorf("bad flag %q", s)
}
