package domain

import "time"

// CandidateRecord is a raw fact produced by a single fetch adapter.
// Raw text fields (AmountText, StageText, DateText) are filled by sources;
// normalized fields (Amount, Stage, Date) are filled during aggregation.
// A candidate lives only until the merge step of a refresh cycle.
type CandidateRecord struct {
	Category Category `json:"category"`

	// Investment payload
	Company   string   `json:"company,omitempty"`
	Investors []string `json:"investors,omitempty"`
	Sector    string   `json:"sector,omitempty"`
	// Amount in USD millions. Nil when unknown/undisclosed; an unknown
	// amount does not reject the record.
	Amount     *float64 `json:"amount,omitempty"`
	AmountText string   `json:"amount_text,omitempty"`
	Stage      Stage    `json:"stage,omitempty"`
	StageText  string   `json:"stage_text,omitempty"`

	// Event payload
	Title     string `json:"title,omitempty"`
	Venue     string `json:"venue,omitempty"`
	EventType string `json:"event_type,omitempty"`

	// Shared
	Summary  string    `json:"summary,omitempty"`
	Date     time.Time `json:"date"`
	DateText string    `json:"date_text,omitempty"`

	// Grounding
	SourceName    string    `json:"source_name"`
	SourceURL     string    `json:"source_url,omitempty"`
	EvidenceQuote string    `json:"evidence_quote,omitempty"`
	Confidence    float64   `json:"confidence"`
	RetrievedAt   time.Time `json:"retrieved_at"`
}

// ValidatedRecord is a CandidateRecord that passed the grounding gate.
// Invariant: SourceURL is a valid absolute URL, EvidenceQuote is non-empty
// and at least the configured minimum length, Confidence >= minimum.
// A validated record is never mutated, only superseded by a newer cache write.
type ValidatedRecord CandidateRecord

// DedupName returns the identity name used for deduplication:
// company for investments, title for events.
func (c *CandidateRecord) DedupName() string {
	if c.Category == CategoryEvent {
		return c.Title
	}
	return c.Company
}
