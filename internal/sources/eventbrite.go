package sources

import (
	"context"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
	"github.com/AdrianaSo123/newsletter-factory/internal/normalize"
)

const eventbriteSearchURL = "https://www.eventbrite.com/d/online/artificial-intelligence/"

// EventbriteOptions configures an EventbriteSource.
type EventbriteOptions struct {
	Client *feed.Client

	// SearchURL overrides the default AI search page. Used in tests.
	SearchURL string
}

// EventbriteSource scrapes upcoming AI events from Eventbrite search pages.
// Events without a parseable date are dropped: dates are never invented.
type EventbriteSource struct {
	client    *feed.Client
	searchURL string
}

// NewEventbriteSource creates an EventbriteSource.
func NewEventbriteSource(opts EventbriteOptions) *EventbriteSource {
	searchURL := opts.SearchURL
	if searchURL == "" {
		searchURL = eventbriteSearchURL
	}
	return &EventbriteSource{client: opts.Client, searchURL: searchURL}
}

var _ Source = (*EventbriteSource)(nil)

func (s *EventbriteSource) Name() string { return "eventbrite" }

func (s *EventbriteSource) Category() domain.Category { return domain.CategoryEvent }

// Fetch scrapes the search page for upcoming AI events.
func (s *EventbriteSource) Fetch(ctx context.Context, since time.Time, maxResults int) ([]*domain.CandidateRecord, error) {
	body, err := s.client.Get(ctx, s.searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := feed.ParseHTML(body)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var records []*domain.CandidateRecord
	for _, card := range feed.FindAllWithClass(doc, "div", "event-card") {
		if maxResults > 0 && len(records) >= maxResults {
			break
		}

		var title string
		if headings := feed.FindAll(card, "h3"); len(headings) > 0 {
			title = feed.ExtractText(headings[0])
		} else if headings := feed.FindAll(card, "h2"); len(headings) > 0 {
			title = feed.ExtractText(headings[0])
		}
		if title == "" {
			continue
		}

		var link string
		if anchors := feed.FindAll(card, "a"); len(anchors) > 0 {
			link = feed.Attr(anchors[0], "href")
		}

		var dateText string
		if times := feed.FindAll(card, "time"); len(times) > 0 {
			dateText = feed.ExtractText(times[0])
		} else {
			for _, p := range feed.FindAllWithClass(card, "p", "date") {
				dateText = feed.ExtractText(p)
				break
			}
		}
		date := normalize.ParseDate(dateText)
		if date.IsZero() {
			continue
		}
		if date.Before(since) {
			continue
		}

		var description string
		for _, p := range feed.FindAllWithClass(card, "p", "description") {
			description = feed.ExtractText(p)
			break
		}

		var venue string
		for _, p := range feed.FindAllWithClass(card, "p", "venue") {
			venue = feed.ExtractText(p)
			break
		}
		if venue == "" {
			venue = "Virtual"
		}

		// Search pages routinely include unrelated results.
		if !normalize.LooksAIRelated(title + " " + description) {
			continue
		}

		confidence := 0.5
		if link != "" && dateText != "" {
			confidence = 0.7
		}

		records = append(records, &domain.CandidateRecord{
			Category:      domain.CategoryEvent,
			Title:         title,
			Venue:         venue,
			Summary:       summarize(description),
			DateText:      dateText,
			SourceName:    s.Name(),
			SourceURL:     link,
			EvidenceQuote: title + " - " + dateText,
			Confidence:    confidence,
			RetrievedAt:   now,
		})
	}

	return records, nil
}
