package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors for the billing core. Handlers translate these into
// HTTP status codes; anything not in this taxonomy is treated as a
// storage failure and collapsed to a generic response.
var (
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports malformed or missing input. Nothing has been
// mutated when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InventoryNotFoundError names the missing catalog id in a bill request.
type InventoryNotFoundError struct {
	InventoryID uint
}

func (e *InventoryNotFoundError) Error() string {
	return fmt.Sprintf("inventory item %d not found", e.InventoryID)
}

// InsufficientStockError names the item whose on-hand stock cannot cover
// the requested quantity.
type InsufficientStockError struct {
	ItemName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity for item %s", e.ItemName)
}

// StorageError wraps an unexpected persistence failure after rollback.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
