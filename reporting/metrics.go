package reporting

// ReportRow is a rollup with the two derived efficiency ratios.
type ReportRow struct {
	Row
	CPO  float64
	ROAS float64
}

// WithMetrics derives CPO and ROAS for each row.
//
// A zero denominator yields 0, not Inf or NaN; dashboards and CSV
// consumers downstream must never see a non-finite number.
func WithMetrics(rows []Row) []ReportRow {
	out := make([]ReportRow, 0, len(rows))
	for _, r := range rows {
		rr := ReportRow{Row: r}
		if r.IHC != 0 {
			rr.CPO = r.Cost / r.IHC
		}
		if r.Cost != 0 {
			rr.ROAS = r.IHCRevenue / r.Cost
		}
		out = append(out, rr)
	}
	return out
}
