package dataset

import "database/sql"

// Assemble denormalizes the three input tables into one row set keyed
// by (session, conversion).
//
// Sessions keep their row even without a cost record (left join on
// session_id). Each session of a converting user is then paired with
// every conversion of that user, so a touchpoint can contribute to
// more than one conversion. Sessions of users who never converted
// drop out here.
func Assemble(sessions []Session, costs []SessionCost, conversions []Conversion) []Row {
	costBySession := make(map[string]sql.NullFloat64, len(costs))
	for _, c := range costs {
		costBySession[c.SessionID] = c.Cost
	}

	convsByUser := make(map[string][]Conversion, len(conversions))
	for _, cv := range conversions {
		convsByUser[cv.UserID] = append(convsByUser[cv.UserID], cv)
	}

	var out []Row
	for _, s := range sessions {
		cost := costBySession[s.SessionID] // zero value: no cost recorded
		for _, cv := range convsByUser[s.UserID] {
			out = append(out, Row{
				Session:  s,
				Cost:     cost,
				ConvID:   cv.ConvID,
				ConvTime: cv.ConvTime,
				Revenue:  cv.Revenue,
			})
		}
	}
	return out
}
