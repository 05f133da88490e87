package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Record errors
	ErrMsgItemNotFound   = "inventory item not found"
	ErrMsgCropNotFound   = "crop not found"
	ErrMsgRecordNotFound = "record not found"
	ErrMsgFarmNotFound   = "farm not found"

	// Stock errors
	ErrMsgInvalidQuantity   = "quantity must be greater than zero"
	ErrMsgInvalidMovement   = "invalid movement type"
	ErrMsgInsufficientStock = "insufficient stock"

	// Sync errors
	ErrMsgUnknownTable     = "unknown sync table"
	ErrMsgInvalidOperation = "invalid sync operation"
	ErrMsgDeliveryFailed   = "delivery failed"
	ErrMsgEntryNotFound    = "sync queue entry not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrCropNotFound   = errors.New(ErrMsgCropNotFound)
	ErrRecordNotFound = errors.New(ErrMsgRecordNotFound)
	ErrFarmNotFound   = errors.New(ErrMsgFarmNotFound)

	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)
	ErrInvalidMovement   = errors.New(ErrMsgInvalidMovement)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)

	ErrUnknownTable     = errors.New(ErrMsgUnknownTable)
	ErrInvalidOperation = errors.New(ErrMsgInvalidOperation)
	ErrDeliveryFailed   = errors.New(ErrMsgDeliveryFailed)
	ErrEntryNotFound    = errors.New(ErrMsgEntryNotFound)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
