// Package normalize turns raw source payloads into comparable records:
// amount, stage, date and sector normalization, then merge with
// deterministic dedup across sources.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var moneyRe = regexp.MustCompile(
	`(?i)\$(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)\s*(billion|million|bn|m|b)\b`,
)

// rawDollarRe matches unit-less dollar amounts such as "$450,000,000".
var rawDollarRe = regexp.MustCompile(
	`\$(\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`,
)

// ParseAmountUSDMillions parses a USD amount out of free text and returns
// the value in USD millions.
//
//	"$12M"           -> 12.0
//	"$1.2B"          -> 1200.0
//	"$450 million"   -> 450.0
//	"$450,000,000"   -> 450.0
//
// Unit-less amounts are read as raw dollars and accepted only at one
// million or above; smaller figures are prices, not deal sizes. Returns
// nil when no amount is found. Amounts are never guessed; an unknown
// amount stays unknown.
func ParseAmountUSDMillions(text string) *float64 {
	if text == "" {
		return nil
	}

	if m := moneyRe.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		switch strings.ToLower(m[2]) {
		case "billion", "b", "bn":
			value *= 1000.0
		}
		return &value
	}

	if m := rawDollarRe.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		dollars, err := strconv.ParseFloat(raw, 64)
		if err != nil || dollars < 1_000_000 {
			return nil
		}
		value := dollars / 1_000_000
		return &value
	}

	return nil
}
