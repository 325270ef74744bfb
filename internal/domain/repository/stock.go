package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/model"
)

// StockLedger owns product quantities. Reserve must be a single conditional
// operation in the backing store: a check-then-write pair would lose updates
// under concurrent reservations of the same product.
type StockLedger interface {
	// Reserve atomically asserts quantity >= qty and decrements. Returns
	// errors.ErrProductNotFound or errors.ErrInsufficientStock as business
	// outcomes, never retries.
	Reserve(ctx context.Context, productID uuid.UUID, qty int64) error
	// Release undoes a prior reservation.
	Release(ctx context.Context, productID uuid.UUID, qty int64) error
}

// DriftJournal records compensating releases that failed so the reconciler
// can retry them.
type DriftJournal interface {
	Record(ctx context.Context, productID uuid.UUID, qty int64, reason string) error
	Pending(ctx context.Context, limit int) ([]model.StockAdjustment, error)
	// Settle claims a pending adjustment. It returns errors.ErrNotFound when
	// the row is unknown or already settled, so an adjustment can be claimed
	// at most once.
	Settle(ctx context.Context, adjustmentID int64) error
	// Reopen marks a claimed adjustment pending again after a failed retry.
	Reopen(ctx context.Context, adjustmentID int64) error
}
