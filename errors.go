package sumtree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("sumtree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("sumtree: index out of bounds")
	// ErrInvalidDimension signals an invalid or missing dimension configuration.
	ErrInvalidDimension = errors.New("sumtree: invalid dimension")
)
