package storage

import "errors"

var (
	// ErrPoolExhausted is returned by Allocate when no free slot remains
	ErrPoolExhausted = errors.New("storage: pool exhausted")

	// ErrInvalidOwnership is the panic value for freeing a slot not currently in use (pooldebug builds)
	ErrInvalidOwnership = errors.New("storage: slot not owned by used list")

	// ErrInvalidCapacity is returned when capacity is below two slots
	ErrInvalidCapacity = errors.New("storage: capacity must be greater than 1")

	// ErrInvalidElementSize is returned when the raw element size is zero or negative
	ErrInvalidElementSize = errors.New("storage: element size must be positive")
)
