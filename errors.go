package flattree

import "errors"

var (
	// ErrInvalidArgument signals an absent, already attached or otherwise
	// unusable node argument. Calls failing with it do not mutate the tree.
	ErrInvalidArgument = errors.New("flattree: invalid argument")
	// ErrIndexOutOfBounds signals an invalid flat position or child index.
	ErrIndexOutOfBounds = errors.New("flattree: index out of bounds")
	// ErrInvariantViolation signals a corrupted position index or a
	// programming error which must not be recovered from.
	ErrInvariantViolation = errors.New("flattree: invariant violation")
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("flattree: invalid configuration")
)
