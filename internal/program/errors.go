package program

import "github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"

var (
	// ErrConfiguration marks invalid caller-supplied input. Not retryable.
	ErrConfiguration = errors.NewSentinel("invalid configuration")
	// ErrNoCandidates means every fallback strategy produced an empty
	// pool for some required muscle group.
	ErrNoCandidates = errors.NewSentinel("no candidate exercises")
	// ErrDataUnavailable means a required upstream dataset could not be
	// fetched. Retryable.
	ErrDataUnavailable = errors.NewSentinel("data unavailable")
	// ErrNotFound marks a missing client or exercise row.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrTimeout marks a caller-imposed deadline expiring before the
	// collaborator I/O finished.
	ErrTimeout = errors.NewSentinel("generation timed out")
)
