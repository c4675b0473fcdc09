// Package reporting rolls credited touchpoints up into per-channel,
// per-day rows and derives spend-efficiency metrics.
package reporting

import (
	"sort"

	"attrib/attribution"
	"attrib/dataset"
)

// Row is one (channel, date) rollup before metric derivation.
type Row struct {
	ChannelName string
	Date        string
	Cost        float64
	IHC         float64
	IHCRevenue  float64
}

// Aggregate re-joins the raw inputs with the attribution output and
// groups by (channel_name, event_date).
//
// The join chain is Session -> Cost (session_id) -> Credit
// (session_id, all matches) -> Conversion (user_id, all matches),
// left-preserving at every step: a session with no credit or no
// conversion still lands in its group, contributing cost only. Credit
// carries one row per (conversion, session) pair, so multi-conversion
// users expand here exactly as they did during assembly.
//
// ihc_revenue pairs each expanded row's own revenue with its own ihc
// before summing; grouping never mixes one row's revenue with another
// row's credit.
func Aggregate(sessions []dataset.Session, costs []dataset.SessionCost,
	credits []attribution.Credit, conversions []dataset.Conversion) []Row {

	costBySession := make(map[string]float64, len(costs))
	for _, c := range costs {
		if c.Cost.Valid {
			costBySession[c.SessionID] = c.Cost.Float64
		}
	}

	creditsBySession := make(map[string][]attribution.Credit, len(credits))
	for _, cr := range credits {
		creditsBySession[cr.SessionID] = append(creditsBySession[cr.SessionID], cr)
	}

	convsByUser := make(map[string][]dataset.Conversion, len(conversions))
	for _, cv := range conversions {
		convsByUser[cv.UserID] = append(convsByUser[cv.UserID], cv)
	}

	type key struct{ channel, date string }
	groups := make(map[key]*Row)
	get := func(channel, date string) *Row {
		k := key{channel, date}
		g, ok := groups[k]
		if !ok {
			g = &Row{ChannelName: channel, Date: date}
			groups[k] = g
		}
		return g
	}

	for _, s := range sessions {
		cost, hasCost := costBySession[s.SessionID]

		scs := creditsBySession[s.SessionID]
		if len(scs) == 0 {
			scs = []attribution.Credit{{}} // unmatched left row
		}
		cvs := convsByUser[s.UserID]
		if len(cvs) == 0 {
			cvs = []dataset.Conversion{{}}
		}

		g := get(s.ChannelName, s.EventDate)
		for _, cr := range scs {
			for _, cv := range cvs {
				if hasCost {
					g.Cost += cost
				}
				if cr.IHC.Valid {
					g.IHC += cr.IHC.Float64
					if cv.ConvID != "" {
						g.IHCRevenue += cv.Revenue * cr.IHC.Float64
					}
				}
			}
		}
	}

	out := make([]Row, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChannelName != out[j].ChannelName {
			return out[i].ChannelName < out[j].ChannelName
		}
		return out[i].Date < out[j].Date
	})
	return out
}
