package sources

import (
	"context"
	"strings"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/normalize"
)

const conferenceCalFeedURL = "https://aiconferences.example.com/calendar/feed.xml"

// ConferenceCalOptions configures a ConferenceCalSource.
type ConferenceCalOptions struct {
	Client *feed.Client

	// FeedURL overrides the default calendar feed. Used in tests.
	FeedURL string
}

// ConferenceCalSource fetches upcoming AI conferences from a syndicated
// calendar feed (RSS or Atom).
type ConferenceCalSource struct {
	client  *feed.Client
	feedURL string
}

// NewConferenceCalSource creates a ConferenceCalSource.
func NewConferenceCalSource(opts ConferenceCalOptions) *ConferenceCalSource {
	feedURL := opts.FeedURL
	if feedURL == "" {
		feedURL = conferenceCalFeedURL
	}
	return &ConferenceCalSource{client: opts.Client, feedURL: feedURL}
}

var _ Source = (*ConferenceCalSource)(nil)

func (s *ConferenceCalSource) Name() string { return "conference-cal" }

func (s *ConferenceCalSource) Category() domain.Category { return domain.CategoryEvent }

// Fetch retrieves calendar entries dated at or after since.
func (s *ConferenceCalSource) Fetch(ctx context.Context, since time.Time, maxResults int) ([]*domain.CandidateRecord, error) {
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

		date := normalize.ParseDate(item.Published)
		if date.IsZero() || date.Before(since) {
			continue
		}

		text := entryText(item)
		if !normalize.LooksAIRelated(text) {
			continue
		}

		records = append(records, &domain.CandidateRecord{
			Category:      domain.CategoryEvent,
			Title:         item.Title,
			Venue:         venueFromCategories(item.Categories),
			Summary:       summarize(text),
			DateText:      item.Published,
			SourceName:    s.Name(),
			SourceURL:     item.Link,
			EvidenceQuote: item.Title + " - " + item.Published,
			Confidence:    0.6,
			RetrievedAt:   now,
		})
	}

	return records, nil
}

// venueFromCategories picks a venue label out of feed categories.
// Calendar feeds tag entries with a location category; online events are
// tagged "Virtual" or "Online".
func venueFromCategories(categories []string) string {
	for _, c := range categories {
		lower := strings.ToLower(c)
		if lower == "virtual" || lower == "online" {
			return "Virtual"
		}
		// Location tags carry a comma: "San Francisco, CA".
		if strings.Contains(c, ",") {
			return c
		}
	}
	return "Virtual"
}
