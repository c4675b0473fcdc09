package journey

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrib/dataset"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(convID, sessionID, userID, channel string, eventTime, convTime time.Time, costPresent bool) dataset.Row {
	r := dataset.Row{
		Session: dataset.Session{
			SessionID:   sessionID,
			UserID:      userID,
			ChannelName: channel,
			EventTime:   eventTime,
		},
		ConvID:   convID,
		ConvTime: convTime,
	}
	if costPresent {
		r.Cost = sql.NullFloat64{Float64: 1, Valid: true}
	}
	return r
}

func TestBuildOrdersWithinPartition(t *testing.T) {
	t.Parallel()

	conv := ts("2023-09-01T09:00:00Z")
	rows := []dataset.Row{
		row("c1", "s3", "u1", "display", ts("2023-09-01T12:00:00Z"), conv, false),
		row("c1", "s1", "u1", "paid_search", ts("2023-09-01T10:00:00Z"), conv, true),
		row("c1", "s2", "u1", "social", ts("2023-09-01T11:00:00Z"), conv, false),
	}

	tps, err := Builder{}.Build(rows)
	require.NoError(t, err)
	require.Len(t, tps, 3)

	assert.Equal(t, []string{"s1", "s2", "s3"},
		[]string{tps[0].SessionID, tps[1].SessionID, tps[2].SessionID})
	for i := 1; i < len(tps); i++ {
		assert.False(t, tps[i].Timestamp.Before(tps[i-1].Timestamp))
	}
}

func TestBuildWindowAtOrAfter(t *testing.T) {
	t.Parallel()

	conv := ts("2023-09-01T11:00:00Z")
	rows := []dataset.Row{
		row("c1", "before", "u1", "a", ts("2023-09-01T10:00:00Z"), conv, false),
		row("c1", "exact", "u1", "a", ts("2023-09-01T11:00:00Z"), conv, false),
		row("c1", "after", "u1", "a", ts("2023-09-01T12:00:00Z"), conv, false),
	}

	tps, err := Builder{Window: WindowAtOrAfter}.Build(rows)
	require.NoError(t, err)
	require.Len(t, tps, 2)
	assert.Equal(t, "exact", tps[0].SessionID)
	assert.Equal(t, "after", tps[1].SessionID)
}

func TestBuildWindowBefore(t *testing.T) {
	t.Parallel()

	conv := ts("2023-09-01T11:00:00Z")
	rows := []dataset.Row{
		row("c1", "before", "u1", "a", ts("2023-09-01T10:00:00Z"), conv, false),
		row("c1", "exact", "u1", "a", ts("2023-09-01T11:00:00Z"), conv, false),
		row("c1", "after", "u1", "a", ts("2023-09-01T12:00:00Z"), conv, false),
	}

	tps, err := Builder{Window: WindowBefore}.Build(rows)
	require.NoError(t, err)
	require.Len(t, tps, 1)
	assert.Equal(t, "before", tps[0].SessionID)
}

func TestBuildUnknownWindow(t *testing.T) {
	t.Parallel()

	_, err := Builder{Window: "sideways"}.Build(nil)
	assert.Error(t, err)
}

func TestBuildCostPresenceFlag(t *testing.T) {
	t.Parallel()

	conv := ts("2023-09-01T09:00:00Z")
	rows := []dataset.Row{
		row("c1", "s1", "u1", "a", ts("2023-09-01T10:00:00Z"), conv, true),
		row("c1", "s2", "u1", "a", ts("2023-09-01T11:00:00Z"), conv, false),
	}

	tps, err := Builder{}.Build(rows)
	require.NoError(t, err)
	require.Len(t, tps, 2)
	assert.True(t, tps[0].CostPresent)
	assert.False(t, tps[1].CostPresent)
}

func TestBuildPartitionsByConversionAndUser(t *testing.T) {
	t.Parallel()

	rows := []dataset.Row{
		row("c1", "s1", "u1", "a", ts("2023-09-01T10:00:00Z"), ts("2023-09-01T09:00:00Z"), false),
		row("c2", "s1", "u1", "a", ts("2023-09-01T10:00:00Z"), ts("2023-09-02T09:00:00Z"), false),
		row("c3", "s9", "u2", "a", ts("2023-09-01T10:00:00Z"), ts("2023-09-01T09:00:00Z"), false),
	}

	tps, err := Builder{}.Build(rows)
	require.NoError(t, err)

	// c2's conversion happened after the session, so its partition
	// contributes nothing under the default window.
	require.Len(t, tps, 2)
	assert.Equal(t, "c1", tps[0].ConversionID)
	assert.Equal(t, "c3", tps[1].ConversionID)

	// Every output pair exists in the input.
	seen := map[[2]string]bool{}
	for _, r := range rows {
		seen[[2]string{r.ConvID, r.SessionID}] = true
	}
	for _, tp := range tps {
		assert.True(t, seen[[2]string{tp.ConversionID, tp.SessionID}])
	}
}

func TestBuildEmptyInput(t *testing.T) {
	t.Parallel()

	tps, err := Builder{}.Build(nil)
	require.NoError(t, err)
	assert.NotNil(t, tps)
	assert.Empty(t, tps)
}
