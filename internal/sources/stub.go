package sources

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

// Stub is a canned Source for tests in this and dependent packages.
type Stub struct {
	SourceName     string
	SourceCategory domain.Category
	Records        []*domain.CandidateRecord
	Err            error

	// PanicMessage, when non-empty, makes Fetch panic.
	PanicMessage string

	calls atomic.Int64
}

var _ Source = (*Stub)(nil)

func (s *Stub) Name() string { return s.SourceName }

func (s *Stub) Category() domain.Category { return s.SourceCategory }

func (s *Stub) Fetch(ctx context.Context, _ time.Time, _ int) ([]*domain.CandidateRecord, error) {
	s.calls.Add(1)

	if s.PanicMessage != "" {
		panic(s.PanicMessage)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*domain.CandidateRecord, len(s.Records))
	copy(out, s.Records)
	return out, nil
}

// Calls returns how many times Fetch has been invoked.
func (s *Stub) Calls() int { return int(s.calls.Load()) }
