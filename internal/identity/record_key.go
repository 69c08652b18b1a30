package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// ComputeRecordKey computes a deterministic dedup key using SHA256.
// Investments: SHA256(category|company|date(day)|amount_bucket)
// Events:      SHA256(category|title|date(day)|venue)
// Returns hex-encoded hash (64 characters).
func ComputeRecordKey(r *domain.CandidateRecord) string {
	var data string
	switch r.Category {
	case domain.CategoryEvent:
		data = fmt.Sprintf("%s|%s|%s|%s",
			string(r.Category),
			normalizeName(r.Title),
			r.Date.Format("2006-01-02"),
			normalizeName(r.Venue),
		)
	default:
		data = fmt.Sprintf("%s|%s|%s|%s",
			string(r.Category),
			normalizeName(r.Company),
			r.Date.Format("2006-01-02"),
			AmountBucket(r.Amount),
		)
	}

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// AmountBucket maps an amount in USD millions to a bucket label so that
// near-identical observations of the same deal collapse to one key.
// Amounts are rounded to one decimal; nil maps to "unknown".
func AmountBucket(amount *float64) string {
	if amount == nil {
		return "unknown"
	}
	return strconv.FormatFloat(round1(*amount), 'f', 1, 64)
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int64(v*10-0.5)) / 10
	}
	return float64(int64(v*10+0.5)) / 10
}

// normalizeName lowercases and collapses whitespace for identity comparison.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
