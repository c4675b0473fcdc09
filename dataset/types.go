package dataset

import (
	"database/sql"
	"time"
)

// Session is one raw marketing touchpoint for a user.
type Session struct {
	SessionID             string
	UserID                string
	ChannelName           string
	EventTime             time.Time
	EventDate             string // calendar date as stored, e.g. "2023-09-01"
	HolderEngagement      bool
	CloserEngagement      bool
	ImpressionInteraction bool
}

// SessionCost is the spend recorded against a session. Not every
// session has one.
type SessionCost struct {
	SessionID string
	Cost      sql.NullFloat64
}

// Conversion is one purchase/order event. A user may have any number
// of conversions.
type Conversion struct {
	ConvID   string
	UserID   string
	ConvTime time.Time
	Revenue  float64
}

// Row is one assembled (session, conversion) pair: every session of a
// converting user paired with each of that user's conversions, with
// the session's cost attached when one exists.
type Row struct {
	Session
	Cost     sql.NullFloat64
	ConvID   string
	ConvTime time.Time
	Revenue  float64
}
