package dataset

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAssembleKeepsSessionsWithoutCost(t *testing.T) {
	t.Parallel()

	sessions := []Session{
		{SessionID: "s1", UserID: "u1", ChannelName: "paid_search", EventTime: ts("2023-09-01T10:00:00Z"), EventDate: "2023-09-01"},
		{SessionID: "s2", UserID: "u1", ChannelName: "display", EventTime: ts("2023-09-01T11:00:00Z"), EventDate: "2023-09-01"},
	}
	costs := []SessionCost{
		{SessionID: "s1", Cost: sql.NullFloat64{Float64: 2.5, Valid: true}},
		// s2 has no cost row at all
	}
	convs := []Conversion{
		{ConvID: "c1", UserID: "u1", ConvTime: ts("2023-09-01T12:00:00Z"), Revenue: 100},
	}

	rows := Assemble(sessions, costs, convs)
	require.Len(t, rows, 2)

	assert.Equal(t, "s1", rows[0].SessionID)
	assert.True(t, rows[0].Cost.Valid)
	assert.Equal(t, 2.5, rows[0].Cost.Float64)

	assert.Equal(t, "s2", rows[1].SessionID)
	assert.False(t, rows[1].Cost.Valid)
}

func TestAssembleCrossProductPerConversion(t *testing.T) {
	t.Parallel()

	sessions := []Session{
		{SessionID: "s1", UserID: "u1", EventTime: ts("2023-09-01T10:00:00Z")},
	}
	convs := []Conversion{
		{ConvID: "c1", UserID: "u1", ConvTime: ts("2023-09-01T12:00:00Z"), Revenue: 50},
		{ConvID: "c2", UserID: "u1", ConvTime: ts("2023-09-02T12:00:00Z"), Revenue: 75},
	}

	rows := Assemble(sessions, nil, convs)
	require.Len(t, rows, 2)
	assert.Equal(t, "c1", rows[0].ConvID)
	assert.Equal(t, "c2", rows[1].ConvID)
	// Same touchpoint appears once per conversion of the same user.
	assert.Equal(t, "s1", rows[0].SessionID)
	assert.Equal(t, "s1", rows[1].SessionID)
}

func TestAssembleDropsNonConvertingUsers(t *testing.T) {
	t.Parallel()

	sessions := []Session{
		{SessionID: "s1", UserID: "u1"},
		{SessionID: "s2", UserID: "u2"},
	}
	convs := []Conversion{
		{ConvID: "c1", UserID: "u2", ConvTime: ts("2023-09-01T12:00:00Z")},
	}

	rows := Assemble(sessions, nil, convs)
	require.Len(t, rows, 1)
	assert.Equal(t, "s2", rows[0].SessionID)
}

func TestAssembleEmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Assemble(nil, nil, nil))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", "2023-09-01T10:30:00Z", ts("2023-09-01T10:30:00Z"), false},
		{"plain", "2023-09-01 10:30:00", time.Date(2023, 9, 1, 10, 30, 0, 0, time.UTC), false},
		{"t separator", "2023-09-01T10:30:00", time.Date(2023, 9, 1, 10, 30, 0, 0, time.UTC), false},
		{"padded", "  2023-09-01 10:30:00 ", time.Date(2023, 9, 1, 10, 30, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "not-a-time", time.Time{}, true},
		{"date only rejected", "2023-09-01", time.Time{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "2023-09-01", "2023-09-01", false},
		{"timestamp column", "2023-09-01 10:30:00", "2023-09-01", false},
		{"garbage", "01/09/2023x", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
