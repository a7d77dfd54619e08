package connection

import "errors"

// Sentinel errors for connection management.
var (
	// ErrNotConnected indicates an operation was attempted without a live link.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates Connect was called on a live link.
	ErrAlreadyConnected = errors.New("already connected")
)
