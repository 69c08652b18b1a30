// Package sources implements the per-provider fetch adapters. Each source
// returns raw candidate records; parsing of amounts, stages and dates into
// comparable form happens downstream in normalize.
package sources

import (
	"context"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// Source fetches candidate records from one external provider.
type Source interface {
	// Name returns the stable source identifier used in grounding
	// attribution and fetch logs.
	Name() string

	// Category returns the record category this source produces.
	Category() domain.Category

	// Fetch retrieves candidates published at or after since, up to
	// maxResults. Errors are classified by the resilience wrapper;
	// sources just return them.
	Fetch(ctx context.Context, since time.Time, maxResults int) ([]*domain.CandidateRecord, error)
}
