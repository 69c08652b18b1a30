package sources

import (
	"context"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/normalize"
)

const crunchbaseFeedURL = "https://news.crunchbase.com/feed/"

// CrunchbaseOptions configures a CrunchbaseNewsSource.
type CrunchbaseOptions struct {
	Client *feed.Client

	// FeedURL overrides the default feed. Used in tests.
	FeedURL string
}

// CrunchbaseNewsSource fetches funding stories from the Crunchbase News
// RSS feed. Stories without a parseable dollar amount are skipped; this
// feed's headlines are the evidence.
type CrunchbaseNewsSource struct {
	client  *feed.Client
	feedURL string
}

// NewCrunchbaseNewsSource creates a CrunchbaseNewsSource.
func NewCrunchbaseNewsSource(opts CrunchbaseOptions) *CrunchbaseNewsSource {
	feedURL := opts.FeedURL
	if feedURL == "" {
		feedURL = crunchbaseFeedURL
	}
	return &CrunchbaseNewsSource{client: opts.Client, feedURL: feedURL}
}

var _ Source = (*CrunchbaseNewsSource)(nil)

func (s *CrunchbaseNewsSource) Name() string { return "crunchbase-news" }

func (s *CrunchbaseNewsSource) Category() domain.Category { return domain.CategoryInvestment }

// Fetch retrieves funding stories published at or after since.
func (s *CrunchbaseNewsSource) Fetch(ctx context.Context, since time.Time, maxResults int) ([]*domain.CandidateRecord, error) {
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

		// Only stories whose text carries an explicit amount.
		if normalize.ParseAmountUSDMillions(text) == nil {
			continue
		}

		company := ExtractCompany(item.Title)
		if company == "" {
			continue
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
			EvidenceQuote: item.Title,
			Confidence:    0.6,
			RetrievedAt:   now,
		})
	}

	return records, nil
}
