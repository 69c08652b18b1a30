package normalize

import "strings"

// Ordered so classification is deterministic when several sectors match.
var sectorKeywords = []struct {
	sector   string
	keywords []string
}{
	{"LLM", []string{"language model", "llm", "gpt", "chatbot", "conversational ai"}},
	{"Computer Vision", []string{"computer vision", "image recognition", "visual ai"}},
	{"Robotics", []string{"robotics", "autonomous", "robot"}},
	{"Developer Tools", []string{"developer", "api", "sdk", "platform"}},
	{"Healthcare AI", []string{"healthcare", "medical", "diagnosis", "health"}},
	{"AI Infrastructure", []string{"infrastructure", "cloud", "compute", "gpu"}},
	{"Enterprise AI", []string{"enterprise", "b2b", "business"}},
}

// InferSector infers an AI sector label from article text.
// Falls back to the generic "AI" label.
func InferSector(text string) string {
	t := strings.ToLower(text)
	for _, s := range sectorKeywords {
		for _, kw := range s.keywords {
			if strings.Contains(t, kw) {
				return s.sector
			}
		}
	}
	return "AI"
}
