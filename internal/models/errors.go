package models

import (
	"errors"
	"fmt"
)

// Typed failures returned by the service. The HTTP layer maps these to status
// codes; nothing in the core retries, since every operation is a
// deterministic-or-seeded computation over already-validated input.
var (
	// ErrNotFound signals an unknown visualization id.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientPoints signals fewer than 2 points for a projection.
	ErrInsufficientPoints = errors.New("at least 2 points are required")
)

// ValidationError is a request-shape failure: the caller can always recover
// by correcting the request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidParameterError signals a reduction parameter outside its valid range.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}
