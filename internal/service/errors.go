package service

import "errors"

// Domain errors surfaced to the API layer, which maps them to HTTP status
// codes.
var (
	// ErrInsufficientSavings rejects a goal contribution larger than the
	// user's available savings for the current month.
	ErrInsufficientSavings = errors.New("contribution exceeds available savings")

	// ErrInvalidAmount rejects zero or negative amounts on create/update.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidGoalTarget rejects goals without a positive target amount.
	ErrInvalidGoalTarget = errors.New("goal target must be positive")

	// ErrInvalidCategory rejects records whose category is empty.
	ErrInvalidCategory = errors.New("category is required")
)
