package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrEmptyOrder           = errors.New("order has no lines")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingContact       = errors.New("missing delivery contact")
	ErrForbidden            = errors.New("forbidden")
	// ErrStockDrift marks an unrecoverable inconsistency: a reservation was
	// applied for an order that does not exist and could not be released or
	// journaled. Requires operator reconciliation.
	ErrStockDrift = errors.New("inventory drift")
)

// LineError reports which order line failed and why. It wraps
// ErrProductNotFound or ErrInsufficientStock.
type LineError struct {
	ProductID uuid.UUID
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("product %s: %v", e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
