package models

import "errors"

// Sentinel errors for the shop domain. Services and repositories wrap
// these with context via fmt.Errorf("...: %w", ...), and handlers map
// them to HTTP status codes with errors.Is.
var (
	// ErrInvalidArgument signals a bad constructor or setter input:
	// empty name, non-positive dimension, out-of-range discount.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateModel signals an attempt to add a bike model that is
	// already present in the inventory.
	ErrDuplicateModel = errors.New("bike model already exists in inventory")

	// ErrNotFound signals a lookup for a model, order or account that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity signals a non-positive quantity where a
	// positive one is required (or a negative initial stock).
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientStock signals that an order cannot be fulfilled
	// from the current inventory.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrParse signals a malformed or truncated shop data file.
	ErrParse = errors.New("malformed shop data")
)
