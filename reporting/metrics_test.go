package reporting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		row      Row
		wantCPO  float64
		wantROAS float64
	}{
		{"normal", Row{Cost: 10, IHC: 0.5, IHCRevenue: 30}, 20, 3},
		{"zero ihc", Row{Cost: 10, IHC: 0, IHCRevenue: 30}, 0, 3},
		{"zero cost", Row{Cost: 0, IHC: 0.5, IHCRevenue: 30}, 0, 0},
		{"all zero", Row{}, 0, 0},
		{"negative cost kept", Row{Cost: -5, IHC: 0.5, IHCRevenue: 10}, -10, -2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := WithMetrics([]Row{tt.row})
			require.Len(t, out, 1)
			assert.InDelta(t, tt.wantCPO, out[0].CPO, 1e-9)
			assert.InDelta(t, tt.wantROAS, out[0].ROAS, 1e-9)
		})
	}
}

func TestWithMetricsAlwaysFinite(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Cost: 0, IHC: 0, IHCRevenue: 0},
		{Cost: 10, IHC: 0, IHCRevenue: 5},
		{Cost: 0, IHC: 1, IHCRevenue: 5},
	}
	for _, rr := range WithMetrics(rows) {
		assert.False(t, math.IsInf(rr.CPO, 0) || math.IsNaN(rr.CPO), "CPO must be finite")
		assert.False(t, math.IsInf(rr.ROAS, 0) || math.IsNaN(rr.ROAS), "ROAS must be finite")
	}
}

func TestWithMetricsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, WithMetrics(nil))
}
