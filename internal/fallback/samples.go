// Package fallback supplies curated sample records for categories that
// have no usable cache. Consumers always receive content, clearly
// attributed to the "curated-sample" source.
package fallback

import (
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// SourceName is the attribution carried by every curated record.
const SourceName = "curated-sample"

func ptr(v float64) *float64 { return &v }

var investmentSamples = []domain.ValidatedRecord{
	{
		Category:      domain.CategoryInvestment,
		Company:       "Anthropic",
		Investors:     []string{"Spark Capital"},
		Sector:        "LLM",
		Amount:        ptr(450),
		AmountText:    "$450 million",
		Stage:         domain.StageSeriesC,
		Summary:       "Anthropic raised $450 million in Series C funding led by Spark Capital to advance AI safety research.",
		Date:          time.Date(2023, 5, 23, 0, 0, 0, 0, time.UTC),
		SourceName:    SourceName,
		SourceURL:     "https://www.anthropic.com/news/anthropic-series-c",
		EvidenceQuote: "Anthropic has raised $450 million in Series C funding led by Spark Capital.",
		Confidence:    0.5,
	},
	{
		Category:      domain.CategoryInvestment,
		Company:       "Figure",
		Investors:     []string{"Microsoft", "OpenAI Startup Fund", "NVIDIA"},
		Sector:        "Robotics",
		Amount:        ptr(675),
		AmountText:    "$675 million",
		Stage:         domain.StageSeriesB,
		Summary:       "Figure raised $675 million in Series B funding to scale humanoid robot production.",
		Date:          time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		SourceName:    SourceName,
		SourceURL:     "https://www.figure.ai/news/series-b",
		EvidenceQuote: "Figure announced it has raised $675 million in Series B funding at a $2.6 billion valuation.",
		Confidence:    0.5,
	},
	{
		Category:      domain.CategoryInvestment,
		Company:       "Mistral AI",
		Investors:     []string{"Andreessen Horowitz"},
		Sector:        "LLM",
		Amount:        ptr(415),
		AmountText:    "$415 million",
		Stage:         domain.StageSeriesA,
		Summary:       "Mistral AI raised $415 million in Series A funding led by Andreessen Horowitz to build open-weight language models.",
		Date:          time.Date(2023, 12, 11, 0, 0, 0, 0, time.UTC),
		SourceName:    SourceName,
		SourceURL:     "https://mistral.ai/news/series-a",
		EvidenceQuote: "Mistral AI closed a $415 million Series A round led by Andreessen Horowitz.",
		Confidence:    0.5,
	},
}

var eventSamples = []domain.ValidatedRecord{
	{
		Category:      domain.CategoryEvent,
		Title:         "NeurIPS",
		Venue:         "Vancouver, BC",
		EventType:     "Conference",
		Summary:       "Annual conference on neural information processing systems, covering machine learning research.",
		Date:          time.Date(2026, 12, 6, 0, 0, 0, 0, time.UTC),
		SourceName:    SourceName,
		SourceURL:     "https://neurips.cc/",
		EvidenceQuote: "The Annual Conference on Neural Information Processing Systems.",
		Confidence:    0.5,
	},
	{
		Category:      domain.CategoryEvent,
		Title:         "AI Engineer Summit",
		Venue:         "San Francisco",
		EventType:     "Conference",
		Summary:       "Practitioner conference on building production AI systems and agents.",
		Date:          time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		SourceName:    SourceName,
		SourceURL:     "https://www.ai.engineer/summit",
		EvidenceQuote: "AI Engineer Summit brings together engineers building with foundation models.",
		Confidence:    0.5,
	},
	{
		Category:      domain.CategoryEvent,
		Title:         "Weekly LLM Paper Reading",
		Venue:         "Virtual",
		EventType:     "Meetup",
		Summary:       "Community meetup discussing recent large language model papers.",
		Date:          time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		SourceName:    SourceName,
		SourceURL:     "https://www.meetup.com/llm-paper-reading/",
		EvidenceQuote: "Join us for a weekly discussion of recent LLM research papers.",
		Confidence:    0.5,
	},
}

// Samples returns curated records for a category. The returned slice is a
// copy and safe to modify.
func Samples(category domain.Category) []domain.ValidatedRecord {
	var src []domain.ValidatedRecord
	switch category {
	case domain.CategoryInvestment:
		src = investmentSamples
	case domain.CategoryEvent:
		src = eventSamples
	default:
		return nil
	}

	out := make([]domain.ValidatedRecord, len(src))
	copy(out, src)
	return out
}
