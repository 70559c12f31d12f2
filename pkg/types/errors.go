package types

import "errors"

// Argument errors. Malformed syndromes are never coerced.
var (
	ErrInvalidBasis   = errors.New("basis must be X or Z")
	ErrInvalidShape   = errors.New("invalid bit vector shape")
	ErrInvalidBit     = errors.New("bit entries must be 0 or 1")
	ErrInvalidQubit   = errors.New("qubit index out of range")
	ErrInvalidStep    = errors.New("time step out of range")
	ErrInvalidParity  = errors.New("parity must be 0 or 1")
	ErrNilSequence    = errors.New("sequence must not be nil")
	ErrPadTooShort    = errors.New("pad length is shorter than the sequence")
	ErrLengthMismatch = errors.New("sequence lengths do not match")
)

// Decoder selection errors.
var (
	ErrFlagSyndrome        = errors.New("flag syndromes require the flagged decoder")
	ErrClassicalSyndrome   = errors.New("classical syndromes carry no Pauli correction type")
	ErrUnknownSyndromeType = errors.New("unknown syndrome type")
)

// Store errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidData     = errors.New("invalid entity data")
)
