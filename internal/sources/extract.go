package sources

import (
	"regexp"
	"strings"
)

var fundingKeywords = []string{
	"raises",
	"raised",
	"funding",
	"investment",
	"series ",
	"seed",
	"round",
	"closes",
	"backed",
}

// FundingRelated reports whether text looks like a funding story.
func FundingRelated(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range fundingKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

var (
	editorialPrefixRe = regexp.MustCompile(`^\s*(?:Exclusive|Report|Analysis|Opinion)\s*[:\-]\s+`)

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][A-Za-z0-9\.\-\s]+?)\s+(?:raises|secures|closes|gets|lands|scores)\b`),
		regexp.MustCompile(`^([A-Z][A-Za-z0-9\.\-\s]+?)\s+(?:announces|launches|unveils)\b`),
	}
)

// ExtractCompany extracts a company name from a headline. Intentionally
// conservative: returns "" rather than guessing.
func ExtractCompany(title string) string {
	cleaned := strings.TrimSpace(editorialPrefixRe.ReplaceAllString(title, ""))
	if cleaned == "" {
		return ""
	}

	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(cleaned); m != nil {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) >= 2 && len(candidate) <= 60 {
				return candidate
			}
		}
	}

	// First token if it looks like a proper noun.
	fields := strings.Fields(cleaned)
	if len(fields) > 0 {
		first := fields[0]
		if len(first) > 1 && first[0] >= 'A' && first[0] <= 'Z' {
			return first
		}
	}

	return ""
}

var investorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`led by\s+([A-Z][A-Za-z0-9&\.\s]+?)(?:,|\.|;|\n)`),
	regexp.MustCompile(`backed by\s+([A-Z][A-Za-z0-9&\.\s]+?)(?:,|\.|;|\n)`),
	regexp.MustCompile(`participation from\s+([A-Z][A-Za-z0-9&\.\s]+?)(?:,|\.|;|\n)`),
}

const maxInvestorNames = 5

// ExtractInvestors extracts likely investor names from text using
// conservative "led by" / "backed by" patterns.
func ExtractInvestors(text string) []string {
	if text == "" {
		return nil
	}

	var names []string
	for _, re := range investorPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := strings.Join(strings.Fields(m[1]), " ")
			if candidate == "" || contains(names, candidate) {
				continue
			}
			names = append(names, candidate)
			if len(names) >= maxInvestorNames {
				return names
			}
		}
	}
	return names
}

var moneyUnitKeywords = []string{"million", "billion", "m", "b"}

// MoneyQuote returns the first line of text that mentions a dollar amount,
// for use as the evidence quote. Returns "" if no such line exists.
func MoneyQuote(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "$") {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range moneyUnitKeywords {
			if strings.Contains(lower, kw) {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
