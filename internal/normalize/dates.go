package normalize

import (
	"strings"
	"time"
)

// dateLayouts covers the formats observed across RSS feeds, Atom feeds and
// event pages. Tried in order; first hit wins.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
	"January 2 2006",
}

// ParseDate parses a date out of raw feed text. Returns the zero time if
// no layout matches; callers drop records whose dates cannot be resolved.
func ParseDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
