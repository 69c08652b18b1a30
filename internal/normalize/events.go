package normalize

import "strings"

var aiKeywords = []string{
	"ai",
	"artificial intelligence",
	"machine learning",
	"ml",
	"deep learning",
	"llm",
	"large language model",
	"generative ai",
	"genai",
	"gpt",
	"agents",
	"agentic",
}

// LooksAIRelated reports whether free text mentions AI topics. Sources use
// it as a hard filter: search pages routinely include unrelated results.
func LooksAIRelated(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range aiKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// ClassifyEventType maps event text to one of the known event types.
// Specific types win over the generic "Conference" bucket; unmatched text
// becomes "Event".
func ClassifyEventType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "hackathon"):
		return "Hackathon"
	case strings.Contains(t, "workshop"):
		return "Workshop"
	case strings.Contains(t, "webinar"):
		return "Webinar"
	case strings.Contains(t, "meetup"):
		return "Meetup"
	case strings.Contains(t, "conference"), strings.Contains(t, "summit"):
		return "Conference"
	default:
		return "Event"
	}
}
