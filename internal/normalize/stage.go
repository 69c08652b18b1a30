package normalize

import (
	"strings"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// Ordered: "series d" through "series g" all map to SeriesDPlus.
var seriesStages = []struct {
	needle string
	stage  domain.Stage
}{
	{"series a", domain.StageSeriesA},
	{"series b", domain.StageSeriesB},
	{"series c", domain.StageSeriesC},
	{"series d", domain.StageSeriesDPlus},
	{"series e", domain.StageSeriesDPlus},
	{"series f", domain.StageSeriesDPlus},
	{"series g", domain.StageSeriesDPlus},
}

// InferStage infers an investment stage from free text.
// Text that matches no known stage maps to StageUnknown rather than a
// guessed round.
func InferStage(text string) domain.Stage {
	if text == "" {
		return domain.StageUnknown
	}

	t := strings.ToLower(text)
	if strings.Contains(t, "seed") {
		return domain.StageSeed
	}

	for _, s := range seriesStages {
		if strings.Contains(t, s.needle) {
			return s.stage
		}
	}

	if strings.Contains(t, "acquir") {
		return domain.StageAcquisition
	}
	if strings.Contains(t, "ipo") {
		return domain.StageIPO
	}
	if strings.Contains(t, "growth") {
		return domain.StageGrowth
	}
	if strings.Contains(t, "undisclosed") {
		return domain.StageUndisclosed
	}

	return domain.StageUnknown
}
