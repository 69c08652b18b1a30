package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/feed"
)

const eventbriteFixture = `<html><body>
<div class="event-card">
  <h3>AI Engineering Summit</h3>
  <time>2026-03-02</time>
  <p class="venue">San Francisco</p>
  <p class="description">Two-day conference on production machine learning systems.</p>
  <a href="https://eventbrite.com/e/ai-summit">Register</a>
</div>
<div class="event-card">
  <h3>Salsa Night</h3>
  <time>2026-03-05</time>
  <p class="description">Dance the night away.</p>
  <a href="https://eventbrite.com/e/salsa">Register</a>
</div>
<div class="event-card">
  <h3>LLM Hackathon</h3>
  <p class="date">TBD</p>
  <p class="description">Weekend hackathon for LLM applications.</p>
  <a href="https://eventbrite.com/e/llm-hackathon">Register</a>
</div>
</body></html>`

func TestEventbriteSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventbriteFixture))
	}))
	defer srv.Close()

	src := NewEventbriteSource(EventbriteOptions{
		Client:    feed.NewClient(feed.ClientOptions{}),
		SearchURL: srv.URL,
	})

	records, err := src.Fetch(context.Background(), time.Time{}, 10)
	require.NoError(t, err)

	// Salsa Night fails the AI filter; the hackathon has no parseable date.
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, domain.CategoryEvent, rec.Category)
	assert.Equal(t, "AI Engineering Summit", rec.Title)
	assert.Equal(t, "San Francisco", rec.Venue)
	assert.Equal(t, "https://eventbrite.com/e/ai-summit", rec.SourceURL)
	assert.Equal(t, 0.7, rec.Confidence)
	assert.Contains(t, rec.EvidenceQuote, "AI Engineering Summit")
	assert.Equal(t, "eventbrite", rec.SourceName)
}

func TestEventbriteSource_SinceFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventbriteFixture))
	}))
	defer srv.Close()

	src := NewEventbriteSource(EventbriteOptions{
		Client:    feed.NewClient(feed.ClientOptions{}),
		SearchURL: srv.URL,
	})

	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	records, err := src.Fetch(context.Background(), since, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestConferenceCalSource_Fetch(t *testing.T) {
	fixture := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>AI Events Calendar</title>
  <entry>
    <title>NeurIPS 2026</title>
    <link rel="alternate" href="https://neurips.example.com"/>
    <summary>Premier machine learning research conference.</summary>
    <published>2026-12-06T00:00:00Z</published>
    <category term="Vancouver, BC"/>
  </entry>
  <entry>
    <title>Agentic AI Webinar</title>
    <link href="https://webinars.example.com/agentic"/>
    <summary>Live webinar on agentic systems.</summary>
    <published>2026-03-20T00:00:00Z</published>
    <category term="Online"/>
  </entry>
</feed>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	src := NewConferenceCalSource(ConferenceCalOptions{
		Client:  feed.NewClient(feed.ClientOptions{}),
		FeedURL: srv.URL,
	})

	records, err := src.Fetch(context.Background(), time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "NeurIPS 2026", records[0].Title)
	assert.Equal(t, "Vancouver, BC", records[0].Venue)
	assert.Equal(t, "Agentic AI Webinar", records[1].Title)
	assert.Equal(t, "Virtual", records[1].Venue)
	assert.Equal(t, "conference-cal", records[0].SourceName)
}
