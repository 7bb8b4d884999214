package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrIO            = errors.New("i/o failure")

	// Reasoning kernel
	ErrOutOfRange            = errors.New("evidential value out of range")
	ErrParse                 = errors.New("narsese parse failure")
	ErrInvalidPunctuation    = errors.New("invalid punctuation")
	ErrNonMatchingMiddleTerm = errors.New("non-matching middle term")
	ErrNotInheritance        = errors.New("not an inheritance statement")
	ErrMissingTruth          = errors.New("term carries no truth value")
	ErrUnknownFunction       = errors.New("unknown truth function")
)
