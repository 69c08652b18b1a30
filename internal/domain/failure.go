package domain

import (
	"errors"
	"fmt"
)

// ErrRateLimitExceeded is returned when a source's bounded request queue is
// full and a fetch cannot even be scheduled. Treated as transient.
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// FetchFailure describes why a single source fetch ultimately failed.
// Failures are source-local: they never escape the resilience wrapper as
// faults, only as an empty result plus this record.
type FetchFailure struct {
	Source    string
	Reason    string
	Transient bool
}

// Error implements the error interface.
func (f *FetchFailure) Error() string {
	kind := "permanent"
	if f.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("fetch %s failed (%s): %s", f.Source, kind, f.Reason)
}

// NewTransientFailure creates a transient fetch failure.
func NewTransientFailure(source, reason string) *FetchFailure {
	return &FetchFailure{Source: source, Reason: reason, Transient: true}
}

// NewPermanentFailure creates a permanent fetch failure.
func NewPermanentFailure(source, reason string) *FetchFailure {
	return &FetchFailure{Source: source, Reason: reason, Transient: false}
}
