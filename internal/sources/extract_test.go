package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Anthropic raises $450M Series C", "Anthropic"},
		{"Northwood secures $100 million", "Northwood"},
		{"Figure closes $675M round", "Figure"},
		{"Exclusive: Sierra lands $175M at $4.5B valuation", "Sierra"},
		{"Acme Robotics announces new funding", "Acme Robotics"},
		{"the quick brown fox", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompany(tt.title))
		})
	}
}

func TestExtractInvestors(t *testing.T) {
	text := "The round was led by Spark Capital, with participation from Google. " +
		"The company is also backed by Menlo Ventures.\n"

	got := ExtractInvestors(text)

	// Pattern order: "led by" matches first, then "backed by", then
	// "participation from".
	assert.Equal(t, []string{"Spark Capital", "Menlo Ventures", "Google"}, got)
}

func TestExtractInvestors_None(t *testing.T) {
	assert.Empty(t, ExtractInvestors("no investors mentioned here"))
	assert.Empty(t, ExtractInvestors(""))
}

func TestFundingRelated(t *testing.T) {
	assert.True(t, FundingRelated("Anthropic raises $450M Series C"))
	assert.True(t, FundingRelated("seed round closed"))
	assert.False(t, FundingRelated("company ships new product"))
}

func TestMoneyQuote(t *testing.T) {
	text := "Some headline\nAnthropic announced it has raised $450 million.\nMore text"
	assert.Equal(t, "Anthropic announced it has raised $450 million.", MoneyQuote(text))

	assert.Equal(t, "", MoneyQuote("no money mentioned"))
	assert.Equal(t, "", MoneyQuote("price is $5 each"))
}
