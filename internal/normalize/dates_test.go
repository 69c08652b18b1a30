package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"rfc3339", "2026-02-09T00:00:00Z", want},
		{"rfc1123z", "Mon, 09 Feb 2026 12:00:00 +0000", want.Add(12 * time.Hour)},
		{"iso_date", "2026-02-09", want},
		{"long_month", "February 9, 2026", want},
		{"short_month", "Feb 9, 2026", want},
		{"day_first", "09 Feb 2026", want},
		{"padded", "  2026-02-09  ", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseDate(tt.text).Equal(tt.want), "got %v", ParseDate(tt.text))
		})
	}
}

func TestParseDate_Unresolvable(t *testing.T) {
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("next Tuesday").IsZero())
	assert.True(t, ParseDate("TBD").IsZero())
}
