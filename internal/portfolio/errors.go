package portfolio

import "errors"

var (
	// ErrInvalidHolding rejects a draft with non-positive shares or price
	// before any store mutation or network call.
	ErrInvalidHolding = errors.New("invalid holding: shares and purchase price must be positive")

	// ErrInvalidTicker means the price lookup could not resolve the symbol.
	ErrInvalidTicker = errors.New("invalid ticker symbol")

	// ErrDuplicateID means an insert collided with an existing holding id.
	ErrDuplicateID = errors.New("duplicate holding id")

	// ErrNotFound means no holding exists under the requested id.
	ErrNotFound = errors.New("holding not found")

	// ErrDegenerateMetric means a percentage was requested against a zero
	// cost basis; callers must treat it as a data-quality error.
	ErrDegenerateMetric = errors.New("degenerate metric: zero cost basis")

	// ErrRemoteUnavailable means a remote call failed or timed out; any
	// optimistic local change has already been rolled back.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)
