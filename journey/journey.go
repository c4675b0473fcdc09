// Package journey reconstructs per-conversion customer journeys from
// the assembled touchpoint dataset.
package journey

import (
	"fmt"
	"sort"
	"time"

	"attrib/dataset"
)

// Touchpoint is one eligible session within a journey, reduced to the
// column set the attribution stage consumes.
//
// CostPresent is written to the artifact under the header "conversion"
// for compatibility with the established file schema. It records
// whether the session had a cost entry, nothing more; the name in the
// file is a historical mislabel.
type Touchpoint struct {
	ConversionID          string
	SessionID             string
	Timestamp             time.Time
	ChannelLabel          string
	HolderEngagement      bool
	CloserEngagement      bool
	CostPresent           bool
	ImpressionInteraction bool
}

// Window selects which side of the conversion time a session must fall
// on to join the journey.
type Window string

const (
	// WindowAtOrAfter keeps sessions with event_time >= conv_time.
	// This reproduces the long-observed production behavior even
	// though pre-conversion attribution would suggest the opposite;
	// flagged with the product owner, do not silently reverse.
	WindowAtOrAfter Window = "at_or_after"

	// WindowBefore keeps sessions with event_time < conv_time.
	WindowBefore Window = "before"
)

func (w Window) Valid() bool {
	return w == WindowAtOrAfter || w == WindowBefore
}

func (w Window) keeps(eventTime, convTime time.Time) bool {
	if w == WindowBefore {
		return eventTime.Before(convTime)
	}
	return !eventTime.Before(convTime)
}

// Builder flattens assembled rows into journey touchpoints.
type Builder struct {
	Window Window
}

// Build partitions rows by (conv_id, user_id), orders each partition
// ascending by event time (stable, so input order breaks ties),
// applies the eligibility window against the partition's conversion
// time, and projects the survivors to Touchpoints.
//
// A partition with no eligible rows contributes nothing. Empty input
// yields an empty, non-nil slice so the artifact writer still emits a
// header-only file.
func (b Builder) Build(rows []dataset.Row) ([]Touchpoint, error) {
	w := b.Window
	if w == "" {
		w = WindowAtOrAfter
	}
	if !w.Valid() {
		return nil, fmt.Errorf("journey: unknown window policy %q", w)
	}

	type key struct{ convID, userID string }
	parts := make(map[key][]dataset.Row)
	var order []key
	for _, r := range rows {
		k := key{r.ConvID, r.UserID}
		if _, seen := parts[k]; !seen {
			order = append(order, k)
		}
		parts[k] = append(parts[k], r)
	}

	out := make([]Touchpoint, 0, len(rows))
	for _, k := range order {
		part := parts[k]
		sort.SliceStable(part, func(i, j int) bool {
			return part[i].EventTime.Before(part[j].EventTime)
		})

		// Every row in a partition shares one conversion, so the
		// first row's conv_time is the authoritative value.
		convTime := part[0].ConvTime

		for _, r := range part {
			if !w.keeps(r.EventTime, convTime) {
				continue
			}
			out = append(out, Touchpoint{
				ConversionID:          r.ConvID,
				SessionID:             r.SessionID,
				Timestamp:             r.EventTime,
				ChannelLabel:          r.ChannelName,
				HolderEngagement:      r.HolderEngagement,
				CloserEngagement:      r.CloserEngagement,
				CostPresent:           r.Cost.Valid,
				ImpressionInteraction: r.ImpressionInteraction,
			})
		}
	}
	return out, nil
}
