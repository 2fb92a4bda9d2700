package engine

import "errors"

// Common engine errors. Detail is attached at the call site with %w wrapping.
var (
	ErrInvalidOrder  = errors.New("invalid order")
	ErrOrderNotFound = errors.New("order not found")
)
