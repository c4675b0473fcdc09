package attribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrib/journey"
)

var paidSearch = WeightTable{
	"paid_search": {Channel: "paid_search", InitializerWeight: 0.5, HolderWeight: 0.3, CloserWeight: 0.2},
}

func tp(channel string, impression, holder, closer bool) journey.Touchpoint {
	return journey.Touchpoint{
		ConversionID:          "c1",
		SessionID:             "s1",
		Timestamp:             time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC),
		ChannelLabel:          channel,
		ImpressionInteraction: impression,
		HolderEngagement:      holder,
		CloserEngagement:      closer,
	}
}

func TestAssignRoleWeighting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		impression, holder, closer bool
		want                       float64
	}{
		{"no roles", false, false, false, 0},
		{"closer only", false, false, true, 0.2 / 3},
		{"holder only", false, true, false, 0.3 / 3},
		{"initializer only", true, false, false, 0.5 / 3},
		{"all roles", true, true, true, (0.5 + 0.3 + 0.2) / 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			credits := Assign([]journey.Touchpoint{tp("paid_search", tt.impression, tt.holder, tt.closer)}, paidSearch)
			require.Len(t, credits, 1)
			require.True(t, credits[0].IHC.Valid)
			assert.InDelta(t, tt.want, credits[0].IHC.Float64, 1e-12)
		})
	}
}

func TestAssignCreditBounds(t *testing.T) {
	t.Parallel()

	// Weights in [0,1] and all flags set keep credit inside [0,1].
	credits := Assign([]journey.Touchpoint{tp("paid_search", true, true, true)}, paidSearch)
	require.Len(t, credits, 1)
	assert.GreaterOrEqual(t, credits[0].IHC.Float64, 0.0)
	assert.LessOrEqual(t, credits[0].IHC.Float64, 1.0)
}

func TestAssignUnmatchedChannelYieldsNull(t *testing.T) {
	t.Parallel()

	credits := Assign([]journey.Touchpoint{tp("tiktok", true, true, true)}, paidSearch)
	require.Len(t, credits, 1)
	// The row survives with a null credit; dropping it would hide the
	// data-quality gap.
	assert.Equal(t, "c1", credits[0].ConvID)
	assert.Equal(t, "s1", credits[0].SessionID)
	assert.False(t, credits[0].IHC.Valid)
}

func TestAssignEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Assign(nil, paidSearch))
}
