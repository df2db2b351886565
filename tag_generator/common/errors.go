package common

import "errors"

var (
	// ErrInvalidArgument: bad configuration or a malformed spectrum. Nothing is computed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvariantViolation: an internal contract was broken (a bug, never user input).
	ErrInvariantViolation = errors.New("invariant violation")
)
