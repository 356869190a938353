package normalize

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// isoLayouts are the accepted date-time forms besides a bare date.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// normalizeDate rewrites DD/MM/YYYY as YYYY-MM-DD. ISO dates, alone or
// followed by a time part, are kept as the date. Anything else yields "".
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 || len(strings.TrimSpace(parts[2])) != 4 {
			return ""
		}
		t, err := time.Parse("2/1/2006", strings.TrimSpace(parts[0])+"/"+strings.TrimSpace(parts[1])+"/"+strings.TrimSpace(parts[2]))
		if err != nil {
			return ""
		}
		return t.Format(isoDate)
	}
	if t, err := time.Parse(isoDate, s); err == nil {
		return t.Format(isoDate)
	}
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			// keep the calendar date as written, whatever the offset
			return s[:len(isoDate)]
		}
	}
	return ""
}
