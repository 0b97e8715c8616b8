package service

import "errors"

var (
	// ErrInvalidArgument covers blank identifiers, non-positive order
	// quantities and a transfer with identical source and destination.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidQuantity covers non-positive amounts on stock operations.
	ErrInvalidQuantity = errors.New("invalid quantity")

	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is returned when the requested quantity exceeds
	// the available quantity; the message reports available vs requested.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidState is returned when fulfilling an already fulfilled order.
	ErrInvalidState = errors.New("invalid state")
)
