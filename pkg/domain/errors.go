package domain

import "errors"

// ErrMalformedDescription is returned when a description is missing required fields
// or its table dimensions are inconsistent.
var ErrMalformedDescription = errors.New("malformed description")

// ErrUnknownSymbol is returned when a symbol representation is not part of the symbol set.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ErrOutOfRangeSymbol is returned when a symbol identifier falls outside the symbol set.
var ErrOutOfRangeSymbol = errors.New("symbol identifier out of range")

// ErrOutOfRangeState is returned when traversal reaches a state identifier outside the table.
var ErrOutOfRangeState = errors.New("state identifier out of range")
