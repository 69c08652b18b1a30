// Package validation implements the grounding gate: only records backed by
// a real source URL, a supporting evidence quote and sufficient confidence
// are admitted into the cache.
package validation

import (
	"log"
	"net/url"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// Rejection reasons reported in Stats.Reasons.
const (
	ReasonMissingURL    = "missing source url"
	ReasonInvalidURL    = "invalid source url"
	ReasonShortQuote    = "short evidence quote"
	ReasonLowConfidence = "low confidence"
	ReasonBadConfidence = "confidence out of range"
)

// Stats summarizes one Validate run.
type Stats struct {
	Admitted int
	Rejected int
	Reasons  map[string]int
}

// Options configures a Gate.
type Options struct {
	// MinConfidence below which records are rejected. Defaults to 0.5.
	MinConfidence float64

	// MinQuoteLength is the minimum evidence quote length in bytes.
	// Defaults to 12; trivial placeholder quotes carry no grounding.
	MinQuoteLength int

	// Logger for rejection reasons. Defaults to log.Default().
	Logger *log.Logger
}

// Gate filters normalized candidates by the grounding policy.
// Rejection is not an error: an all-rejected batch is a normal outcome
// that the pipeline answers with the fallback supplier.
type Gate struct {
	minConfidence  float64
	minQuoteLength int
	logger         *log.Logger
}

// NewGate creates a Gate with the given options.
func NewGate(opts Options) *Gate {
	minConfidence := opts.MinConfidence
	if minConfidence == 0 {
		minConfidence = 0.5
	}
	minQuoteLength := opts.MinQuoteLength
	if minQuoteLength == 0 {
		minQuoteLength = 12
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Gate{
		minConfidence:  minConfidence,
		minQuoteLength: minQuoteLength,
		logger:         logger,
	}
}

// Validate admits candidates that satisfy the grounding policy and returns
// them as immutable ValidatedRecords, plus per-reason rejection counts.
func (g *Gate) Validate(candidates []*domain.CandidateRecord) ([]domain.ValidatedRecord, Stats) {
	stats := Stats{Reasons: make(map[string]int)}

	var admitted []domain.ValidatedRecord
	for _, c := range candidates {
		if c == nil {
			continue
		}

		if reason := g.check(c); reason != "" {
			stats.Rejected++
			stats.Reasons[reason]++
			g.logger.Printf("validation: rejected %q from %s: %s", c.DedupName(), c.SourceName, reason)
			continue
		}

		admitted = append(admitted, domain.ValidatedRecord(*c))
		stats.Admitted++
	}

	return admitted, stats
}

// check returns the first failed policy rule, or "" if the record passes.
func (g *Gate) check(c *domain.CandidateRecord) string {
	if c.SourceURL == "" {
		return ReasonMissingURL
	}
	u, err := url.Parse(c.SourceURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ReasonInvalidURL
	}
	if len(c.EvidenceQuote) < g.minQuoteLength {
		return ReasonShortQuote
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return ReasonBadConfidence
	}
	if c.Confidence < g.minConfidence {
		return ReasonLowConfidence
	}
	return ""
}
