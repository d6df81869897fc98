package spring

import "errors"

var (
	// ErrInvalidConfig indicates a negative, NaN or infinite spring parameter,
	// or one so large that ω² or ζω overflows.
	ErrInvalidConfig = errors.New("spring: invalid config")

	// ErrInvalidTimeStep indicates a negative, NaN or infinite delta time.
	ErrInvalidTimeStep = errors.New("spring: invalid time step")

	// ErrLengthMismatch indicates a value slice that does not match the
	// number of springs in a collection.
	ErrLengthMismatch = errors.New("spring: length mismatch")

	// ErrIndexOutOfRange indicates a spring index outside a collection.
	ErrIndexOutOfRange = errors.New("spring: index out of range")
)
