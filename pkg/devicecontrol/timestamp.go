package devicecontrol

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Day-first wins over month-first for
// slash dates because the vendor is French speaking.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2/1/2006 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006-01-02",
}

// ParseTimestamp parses a vendor date-time string. Anything it cannot read
// yields false, the caller treats the field as absent.
func ParseTimestamp(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}

	// Unix seconds
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		t := time.Unix(secs, 0).UTC()
		return &t, true
	}

	return nil, false
}
