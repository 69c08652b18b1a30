package sources

import (
	"context"
	"strings"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/normalize"
)

const techCrunchFeedURL = "https://techcrunch.com/tag/artificial-intelligence/feed/"

// TechCrunchOptions configures a TechCrunchSource.
type TechCrunchOptions struct {
	Client *feed.Client

	// FeedURL overrides the default AI tag feed. Used in tests.
	FeedURL string
}

// TechCrunchSource fetches AI funding stories from the TechCrunch RSS feed.
type TechCrunchSource struct {
	client  *feed.Client
	feedURL string
}

// NewTechCrunchSource creates a TechCrunchSource.
func NewTechCrunchSource(opts TechCrunchOptions) *TechCrunchSource {
	feedURL := opts.FeedURL
	if feedURL == "" {
		feedURL = techCrunchFeedURL
	}
	return &TechCrunchSource{client: opts.Client, feedURL: feedURL}
}

var _ Source = (*TechCrunchSource)(nil)

func (s *TechCrunchSource) Name() string { return "techcrunch" }

func (s *TechCrunchSource) Category() domain.Category { return domain.CategoryInvestment }

// Fetch retrieves funding stories published at or after since.
func (s *TechCrunchSource) Fetch(ctx context.Context, since time.Time, maxResults int) ([]*domain.CandidateRecord, error) {
	body, err := s.client.Get(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := feed.ParseFeed(body)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var records []*domain.CandidateRecord
	for _, item := range parsed.Items {
		if maxResults > 0 && len(records) >= maxResults {
			break
		}

		published := normalize.ParseDate(item.Published)
		if !published.IsZero() && published.Before(since) {
			continue
		}

		text := entryText(item)
		if !FundingRelated(text) || !normalize.LooksAIRelated(text) {
			continue
		}

		company := ExtractCompany(item.Title)
		if company == "" {
			continue
		}

		quote := MoneyQuote(text)
		confidence := 0.5
		if item.Link != "" && quote != "" {
			confidence = 0.7
		}

		records = append(records, &domain.CandidateRecord{
			Category:      domain.CategoryInvestment,
			Company:       company,
			Investors:     ExtractInvestors(text),
			Summary:       summarize(text),
			AmountText:    text,
			DateText:      item.Published,
			SourceName:    s.Name(),
			SourceURL:     item.Link,
			EvidenceQuote: quote,
			Confidence:    confidence,
			RetrievedAt:   now,
		})
	}

	return records, nil
}

// entryText flattens an RSS item into plain text. Descriptions routinely
// contain HTML.
func entryText(item feed.Item) string {
	parts := []string{item.Title}
	if item.Description != "" {
		if doc, err := feed.ParseHTML([]byte(item.Description)); err == nil {
			parts = append(parts, feed.ExtractText(doc))
		} else {
			parts = append(parts, item.Description)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

const maxSummaryLen = 500

func summarize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxSummaryLen {
		return text[:maxSummaryLen]
	}
	return text
}
