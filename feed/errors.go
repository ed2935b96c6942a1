// Package feed holds the community feed cache and its reconciler: a local
// mirror of the post store, mutated only from re-read authoritative state,
// with a single feed-changed notification per successful mutation.
package feed

import "errors"

// Operation errors. Controllers map these onto HTTP statuses; anything else
// coming out of an operation is a transient store failure.
var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("operation not permitted")
	ErrNotFound             = errors.New("post not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationRequired = errors.New("confirmation required")
)
