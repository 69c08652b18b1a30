package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestRenderMarkdown(t *testing.T) {
	generatedAt := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	n := &Newsletter{
		GeneratedAt: generatedAt,
		Investments: []domain.ValidatedRecord{
			{
				Category:      domain.CategoryInvestment,
				Company:       "Anthropic",
				Investors:     []string{"Spark Capital"},
				Sector:        "LLM",
				Amount:        ptr(450),
				Stage:         domain.StageSeriesC,
				Date:          time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
				SourceName:    "techcrunch",
				SourceURL:     "https://techcrunch.com/anthropic",
				EvidenceQuote: "Anthropic announced it has raised $450 million.",
				Confidence:    0.7,
			},
		},
		InvestmentOrigin: domain.OriginCache,
		Events: []domain.ValidatedRecord{
			{
				Category:   domain.CategoryEvent,
				Title:      "NeurIPS",
				Venue:      "Vancouver, BC",
				EventType:  "Conference",
				Date:       time.Date(2026, 12, 6, 0, 0, 0, 0, time.UTC),
				SourceName: "conference-cal",
				SourceURL:  "https://neurips.cc/",
			},
		},
		EventOrigin: domain.OriginStaleCache,
		Freshness: map[domain.Category]domain.FreshnessInfo{
			domain.CategoryInvestment: {
				State:         domain.StateFresh,
				LastFetchedAt: generatedAt.Add(-time.Hour),
				RecordCount:   1,
			},
			domain.CategoryEvent: {State: domain.StateMissing},
		},
	}

	md := RenderMarkdown(n)

	assert.True(t, strings.HasPrefix(md, "# AI Newsletter\n"))
	assert.Contains(t, md, "### Anthropic")
	assert.Contains(t, md, "- **Amount**: $450M")
	assert.Contains(t, md, "- **Stage**: SERIES_C")
	assert.Contains(t, md, "- **Investors**: Spark Capital")
	assert.Contains(t, md, "[techcrunch](https://techcrunch.com/anthropic)")
	assert.Contains(t, md, "> Anthropic announced it has raised $450 million.")

	assert.Contains(t, md, "### NeurIPS")
	assert.Contains(t, md, "- **Venue**: Vancouver, BC")
	assert.Contains(t, md, "_Served from a stale cache; a refresh is pending._")

	assert.Contains(t, md, "| INVESTMENT | FRESH |")
	assert.Contains(t, md, "| EVENT | MISSING | never | 0 |")
}

func TestRenderMarkdown_EmptySections(t *testing.T) {
	md := RenderMarkdown(&Newsletter{
		GeneratedAt:      time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		InvestmentOrigin: domain.OriginFallback,
	})

	assert.Contains(t, md, "No investment news available.")
	assert.Contains(t, md, "No events available.")
	assert.Contains(t, md, "_Live data unavailable; showing curated samples._")
	assert.NotContains(t, md, "## Data Freshness")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Undisclosed", formatAmount(nil))
	assert.Equal(t, "$450M", formatAmount(ptr(450)))
	assert.Equal(t, "$5.5M", formatAmount(ptr(5.5)))
	assert.Equal(t, "$1.2B", formatAmount(ptr(1200)))
}
