package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts accepted from the store and from seed CSVs.
// RFC3339 first; the plain layout is what pandas-era exports carry.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

const dateLayout = "2006-01-02"

// ParseTime normalizes a timestamp string to time.Time. Financial
// aggregates must never silently include mis-parsed time data, so an
// unrecognized value is an error, never a zero time.
func ParseTime(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", s)
}

// ParseDate validates a calendar-date string and returns it in
// canonical YYYY-MM-DD form.
func ParseDate(s string) (string, error) {
	v := strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t.Format(dateLayout), nil
	}
	// Some exports carry a full timestamp in the date column.
	if t, err := ParseTime(v); err == nil {
		return t.Format(dateLayout), nil
	}
	return "", fmt.Errorf("bad date %q", s)
}
