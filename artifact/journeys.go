// Package artifact reads and writes the pipeline's file artifacts.
//
// The journey snapshot is a hard schema boundary between the journey
// builder and the attribution engine; any column drift here is a
// breaking change for whoever re-runs attribution against an existing
// snapshot.
package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"attrib/dataset"
	"attrib/journey"
)

// JourneyHeader is the fixed column set of the journey snapshot. The
// "conversion" column is the cost-presence flag under its historical
// name.
var JourneyHeader = []string{
	"conversion_id", "session_id", "timestamp", "channel_label",
	"holder_engagement", "closer_engagement", "conversion", "impression_interaction",
}

// WriteJourneys persists touchpoints to path. Zero touchpoints still
// produce a header-only file so the schema survives empty runs.
func WriteJourneys(path string, tps []journey.Touchpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create journeys file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(JourneyHeader); err != nil {
		return fmt.Errorf("write journeys header: %w", err)
	}
	for _, tp := range tps {
		rec := []string{
			tp.ConversionID,
			tp.SessionID,
			tp.Timestamp.Format(time.RFC3339),
			tp.ChannelLabel,
			flag(tp.HolderEngagement),
			flag(tp.CloserEngagement),
			flag(tp.CostPresent),
			flag(tp.ImpressionInteraction),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write journeys row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush journeys: %w", err)
	}
	return f.Close()
}

// ReadJourneys loads a journey snapshot back in.
func ReadJourneys(path string) ([]journey.Touchpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journeys file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("journeys file %s: missing header", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read journeys header: %w", err)
	}
	if len(header) != len(JourneyHeader) {
		return nil, fmt.Errorf("journeys file %s: bad header %v", path, header)
	}
	for i, want := range JourneyHeader {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("journeys file %s: header column %q, want %q", path, header[i], want)
		}
	}

	tps := []journey.Touchpoint{}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			return tps, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read journeys row: %w", err)
		}

		ts, err := dataset.ParseTime(rec[2])
		if err != nil {
			return nil, fmt.Errorf("journeys file %s line %d: %w", path, line, err)
		}
		tp := journey.Touchpoint{
			ConversionID: rec[0],
			SessionID:    rec[1],
			Timestamp:    ts,
			ChannelLabel: rec[3],
		}
		flags := []struct {
			col int
			dst *bool
		}{
			{4, &tp.HolderEngagement},
			{5, &tp.CloserEngagement},
			{6, &tp.CostPresent},
			{7, &tp.ImpressionInteraction},
		}
		for _, fl := range flags {
			v, err := parseFlag(rec[fl.col])
			if err != nil {
				return nil, fmt.Errorf("journeys file %s line %d column %q: %w",
					path, line, JourneyHeader[fl.col], err)
			}
			*fl.dst = v
		}
		tps = append(tps, tp)
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseFlag(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "t":
		return true, nil
	case "0", "false", "f", "":
		return false, nil
	}
	return false, fmt.Errorf("bad flag %q", s)
}
