package time_parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dueDateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDueDate converts a client-supplied due date to UTC.
// Supported inputs:
//   - empty string: no due date (nil, nil)
//   - ISO strings in any of dueDateLayouts; date-only values mean midnight UTC
//   - Unix timestamps as decimal strings: seconds (< 1e12) or milliseconds (>= 1e12)
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}

	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		var t time.Time
		if unix >= 1e12 {
			t = time.UnixMilli(unix).UTC()
		} else {
			t = time.Unix(unix, 0).UTC()
		}
		return &t, nil
	}

	return nil, fmt.Errorf("unsupported due date format: %q", value)
}
