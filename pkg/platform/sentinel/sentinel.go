package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and loaders return these
// (optionally wrapped) so services and handlers can translate them into
// responses without string matching.
//
// These represent factual states about resources, not match outcomes:
// - ErrNotFound: entity does not exist in a store
// - ErrConflict: unique business key (e.g. INN) already taken
// - ErrInvalidState: entity in wrong state for the requested operation
// - ErrUnavailable: backing resource temporarily unavailable
// - ErrListUnavailable: the watchlist snapshot failed to load; retryable
//
// "No match" is never an error anywhere in this codebase.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
	ErrUnavailable     = errors.New("unavailable")
	ErrListUnavailable = errors.New("watchlist unavailable")
)
