package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

func TestInferStage(t *testing.T) {
	tests := []struct {
		text string
		want domain.Stage
	}{
		{"closed a seed round", domain.StageSeed},
		{"raised a Series A", domain.StageSeriesA},
		{"Series B extension", domain.StageSeriesB},
		{"$450M Series C", domain.StageSeriesC},
		{"Series D financing", domain.StageSeriesDPlus},
		{"Series F round", domain.StageSeriesDPlus},
		{"acquired by Microsoft", domain.StageAcquisition},
		{"to acquire the startup", domain.StageAcquisition},
		{"filed for IPO", domain.StageIPO},
		{"growth round", domain.StageGrowth},
		{"an undisclosed round", domain.StageUndisclosed},
		{"", domain.StageUnknown},
		{"company launches new product", domain.StageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, InferStage(tt.text))
		})
	}
}
