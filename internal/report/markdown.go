// Package report renders category results into a Markdown newsletter.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// Newsletter holds everything one rendered issue needs.
type Newsletter struct {
	GeneratedAt time.Time

	Investments      []domain.ValidatedRecord
	InvestmentOrigin domain.ResultOrigin

	Events      []domain.ValidatedRecord
	EventOrigin domain.ResultOrigin

	Freshness map[domain.Category]domain.FreshnessInfo
}

// RenderMarkdown renders the newsletter as a Markdown string.
func RenderMarkdown(n *Newsletter) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# AI Newsletter\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", n.GeneratedAt.Format(time.RFC3339)))

	// Investments
	sb.WriteString("## AI Investment Highlights\n\n")
	writeOriginNote(&sb, n.InvestmentOrigin)
	if len(n.Investments) > 0 {
		for _, rec := range n.Investments {
			writeInvestment(&sb, rec)
		}
	} else {
		sb.WriteString("No investment news available.\n\n")
	}

	// Events
	sb.WriteString("## Upcoming AI Events\n\n")
	writeOriginNote(&sb, n.EventOrigin)
	if len(n.Events) > 0 {
		for _, rec := range n.Events {
			writeEvent(&sb, rec)
		}
	} else {
		sb.WriteString("No events available.\n\n")
	}

	// Freshness
	if len(n.Freshness) > 0 {
		sb.WriteString("## Data Freshness\n\n")
		sb.WriteString("| Category | State | Last Fetched | Records |\n")
		sb.WriteString("|----------|-------|--------------|--------|\n")
		for _, category := range domain.Categories() {
			info, ok := n.Freshness[category]
			if !ok {
				continue
			}
			lastFetched := "never"
			if !info.LastFetchedAt.IsZero() {
				lastFetched = info.LastFetchedAt.Format(time.RFC3339)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n",
				category, info.State, lastFetched, info.RecordCount))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeOriginNote(sb *strings.Builder, origin domain.ResultOrigin) {
	switch origin {
	case domain.OriginStaleCache:
		sb.WriteString("_Served from a stale cache; a refresh is pending._\n\n")
	case domain.OriginFallback:
		sb.WriteString("_Live data unavailable; showing curated samples._\n\n")
	}
}

func writeInvestment(sb *strings.Builder, rec domain.ValidatedRecord) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", rec.Company))

	sb.WriteString(fmt.Sprintf("- **Amount**: %s\n", formatAmount(rec.Amount)))
	if rec.Stage != "" && rec.Stage != domain.StageUnknown {
		sb.WriteString(fmt.Sprintf("- **Stage**: %s\n", rec.Stage))
	}
	if len(rec.Investors) > 0 {
		sb.WriteString(fmt.Sprintf("- **Investors**: %s\n", strings.Join(rec.Investors, ", ")))
	}
	if rec.Sector != "" {
		sb.WriteString(fmt.Sprintf("- **Sector**: %s\n", rec.Sector))
	}
	if !rec.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Date**: %s\n", rec.Date.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf("- **Source**: [%s](%s)\n", rec.SourceName, rec.SourceURL))
	sb.WriteString(fmt.Sprintf("\n> %s\n\n", rec.EvidenceQuote))
}

func writeEvent(sb *strings.Builder, rec domain.ValidatedRecord) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", rec.Title))

	if rec.EventType != "" {
		sb.WriteString(fmt.Sprintf("- **Type**: %s\n", rec.EventType))
	}
	if !rec.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Date**: %s\n", rec.Date.Format("2006-01-02")))
	}
	if rec.Venue != "" {
		sb.WriteString(fmt.Sprintf("- **Venue**: %s\n", rec.Venue))
	}
	if rec.Summary != "" {
		sb.WriteString(fmt.Sprintf("- %s\n", rec.Summary))
	}
	sb.WriteString(fmt.Sprintf("- **Source**: [%s](%s)\n\n", rec.SourceName, rec.SourceURL))
}

// formatAmount renders a USD-millions amount for display.
func formatAmount(amount *float64) string {
	if amount == nil {
		return "Undisclosed"
	}
	v := *amount
	if v >= 1000 {
		return fmt.Sprintf("$%.1fB", v/1000)
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%.0fM", v)
	}
	return fmt.Sprintf("$%.1fM", v)
}
