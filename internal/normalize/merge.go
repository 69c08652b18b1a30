package normalize

import (
	"sort"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
	"github.com/AdrianaSo123/newsletter-factory/internal/identity"
)

// Merge normalizes candidate batches from multiple sources and collapses
// duplicate observations of the same fact into one record per identity key.
//
// Records whose dates cannot be resolved are dropped. When several sources
// observed the same fact, the best-grounded one wins: higher confidence,
// then longer evidence quote, then lexically smallest source name. Output
// is ordered newest-first, with the identity key as a stable tie-break.
func Merge(category domain.Category, batches [][]*domain.CandidateRecord) []*domain.CandidateRecord {
	type keyed struct {
		key string
		rec *domain.CandidateRecord
	}

	best := make(map[string]*domain.CandidateRecord)
	for _, batch := range batches {
		for _, r := range batch {
			if r == nil {
				continue
			}

			rec := *r // normalize a copy, never the caller's record
			if !normalizeRecord(&rec, category) {
				continue
			}

			key := identity.ComputeRecordKey(&rec)
			if cur, ok := best[key]; !ok || betterGrounded(&rec, cur) {
				best[key] = &rec
			}
		}
	}

	merged := make([]keyed, 0, len(best))
	for key, rec := range best {
		merged = append(merged, keyed{key: key, rec: rec})
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].rec.Date.Equal(merged[j].rec.Date) {
			return merged[i].rec.Date.After(merged[j].rec.Date)
		}
		return merged[i].key < merged[j].key
	})

	out := make([]*domain.CandidateRecord, len(merged))
	for i, k := range merged {
		out[i] = k.rec
	}
	return out
}

// normalizeRecord fills derived fields in place. Returns false when the
// record has no resolvable date and must be dropped.
func normalizeRecord(r *domain.CandidateRecord, category domain.Category) bool {
	r.Category = category

	if r.Date.IsZero() && r.DateText != "" {
		r.Date = ParseDate(r.DateText)
	}
	if r.Date.IsZero() {
		return false
	}
	r.Date = r.Date.UTC()

	switch category {
	case domain.CategoryEvent:
		if r.EventType == "" {
			r.EventType = ClassifyEventType(r.Title + " " + r.Summary)
		}
	default:
		if r.Amount == nil && r.AmountText != "" {
			r.Amount = ParseAmountUSDMillions(r.AmountText)
		}
		if r.Amount == nil {
			r.Amount = ParseAmountUSDMillions(r.Summary)
		}
		if !r.Stage.IsValid() {
			if r.StageText != "" {
				r.Stage = InferStage(r.StageText)
			} else {
				r.Stage = InferStage(r.Summary)
			}
		}
		if r.Sector == "" {
			r.Sector = InferSector(r.Company + " " + r.Summary)
		}
	}

	return true
}

// betterGrounded reports whether a is a better-grounded observation than b.
func betterGrounded(a, b *domain.CandidateRecord) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if len(a.EvidenceQuote) != len(b.EvidenceQuote) {
		return len(a.EvidenceQuote) > len(b.EvidenceQuote)
	}
	return a.SourceName < b.SourceName
}
