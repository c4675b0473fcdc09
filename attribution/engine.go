package attribution

import (
	"database/sql"

	"attrib/journey"
)

// Credit is the attribution output for one touchpoint. IHC is null
// when the touchpoint's channel has no row in the weight table; the
// gap is carried through to the report instead of being dropped, so
// data-quality holes stay visible.
type Credit struct {
	ConvID    string
	SessionID string
	IHC       sql.NullFloat64
}

// Assign computes one credit row per touchpoint.
//
// Each of the three role signals contributes its channel weight when
// the corresponding engagement flag is set, and the credit is the
// plain mean over all three roles. There is no renormalization by the
// number of active roles; a single-role touchpoint on a (0.5, 0.3,
// 0.2) channel earns at most 0.5/3.
func Assign(tps []journey.Touchpoint, weights WeightTable) []Credit {
	out := make([]Credit, 0, len(tps))
	for _, tp := range tps {
		c := Credit{ConvID: tp.ConversionID, SessionID: tp.SessionID}
		if w, ok := weights[tp.ChannelLabel]; ok {
			var i, h, cl float64
			if tp.ImpressionInteraction {
				i = w.InitializerWeight
			}
			if tp.HolderEngagement {
				h = w.HolderWeight
			}
			if tp.CloserEngagement {
				cl = w.CloserWeight
			}
			c.IHC = sql.NullFloat64{Float64: (i + h + cl) / 3, Valid: true}
		}
		out = append(out, c)
	}
	return out
}
