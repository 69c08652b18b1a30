package validation

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

func testGate() *Gate {
	return NewGate(Options{Logger: log.New(io.Discard, "", 0)})
}

func grounded() *domain.CandidateRecord {
	return &domain.CandidateRecord{
		Category:      domain.CategoryInvestment,
		Company:       "Anthropic",
		SourceName:    "techcrunch",
		SourceURL:     "https://techcrunch.com/2026/02/08/anthropic-series-c",
		EvidenceQuote: "Anthropic announced it has raised $450 million in Series C funding.",
		Confidence:    0.7,
	}
}

func TestGate_AdmitsGroundedRecord(t *testing.T) {
	gate := testGate()

	admitted, stats := gate.Validate([]*domain.CandidateRecord{grounded()})

	require.Len(t, admitted, 1)
	assert.Equal(t, 1, stats.Admitted)
	assert.Equal(t, 0, stats.Rejected)
	assert.Equal(t, "Anthropic", admitted[0].Company)
}

func TestGate_RejectionReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CandidateRecord)
		reason string
	}{
		{"missing_url", func(c *domain.CandidateRecord) { c.SourceURL = "" }, ReasonMissingURL},
		{"relative_url", func(c *domain.CandidateRecord) { c.SourceURL = "/articles/123" }, ReasonInvalidURL},
		{"no_host", func(c *domain.CandidateRecord) { c.SourceURL = "https://" }, ReasonInvalidURL},
		{"garbage_url", func(c *domain.CandidateRecord) { c.SourceURL = "::not a url::" }, ReasonInvalidURL},
		{"empty_quote", func(c *domain.CandidateRecord) { c.EvidenceQuote = "" }, ReasonShortQuote},
		{"trivial_quote", func(c *domain.CandidateRecord) { c.EvidenceQuote = "AI news" }, ReasonShortQuote},
		{"low_confidence", func(c *domain.CandidateRecord) { c.Confidence = 0.3 }, ReasonLowConfidence},
		{"negative_confidence", func(c *domain.CandidateRecord) { c.Confidence = -0.1 }, ReasonBadConfidence},
		{"confidence_above_one", func(c *domain.CandidateRecord) { c.Confidence = 1.5 }, ReasonBadConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := testGate()
			rec := grounded()
			tt.mutate(rec)

			admitted, stats := gate.Validate([]*domain.CandidateRecord{rec})

			assert.Empty(t, admitted)
			assert.Equal(t, 1, stats.Rejected)
			assert.Equal(t, 1, stats.Reasons[tt.reason])
		})
	}
}

func TestGate_AdversarialBatch(t *testing.T) {
	// Every admitted record must satisfy the grounding invariant no matter
	// how broken the inputs are.
	gate := testGate()

	batch := []*domain.CandidateRecord{
		grounded(),
		nil,
		{},
		{SourceURL: "techcrunch.com/no-scheme", EvidenceQuote: strings.Repeat("q", 40), Confidence: 0.9},
		{SourceURL: "https://ok.example.com/a", EvidenceQuote: "", Confidence: 0.9},
		{SourceURL: "https://ok.example.com/b", EvidenceQuote: strings.Repeat("q", 40), Confidence: 0.0},
		grounded(),
	}

	admitted, stats := gate.Validate(batch)

	assert.Equal(t, len(admitted), stats.Admitted)
	for _, rec := range admitted {
		assert.NotEmpty(t, rec.SourceURL)
		assert.GreaterOrEqual(t, len(rec.EvidenceQuote), 12)
		assert.GreaterOrEqual(t, rec.Confidence, 0.5)
	}
	assert.Equal(t, 2, stats.Admitted)
	assert.Equal(t, 4, stats.Rejected)
}

func TestGate_AllRejectedIsNotAnError(t *testing.T) {
	gate := testGate()

	admitted, stats := gate.Validate([]*domain.CandidateRecord{{}, {}})

	assert.Empty(t, admitted)
	assert.Equal(t, 2, stats.Rejected)
}

func TestGate_CustomThresholds(t *testing.T) {
	gate := NewGate(Options{
		MinConfidence:  0.8,
		MinQuoteLength: 50,
		Logger:         log.New(io.Discard, "", 0),
	})

	rec := grounded() // confidence 0.7, quote ~60 bytes
	admitted, stats := gate.Validate([]*domain.CandidateRecord{rec})

	assert.Empty(t, admitted)
	assert.Equal(t, 1, stats.Reasons[ReasonLowConfidence])
}
