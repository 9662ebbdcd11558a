package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrInvalidState: session in the wrong step for the requested transition
// - ErrStale: a committed-too-late result whose session epoch has moved on
// - ErrUnavailable: backing service temporarily unreachable
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrStale        = errors.New("stale")
	ErrUnavailable  = errors.New("unavailable")
)
