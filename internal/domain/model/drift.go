package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAdjustment is a journaled compensating increment that could not be
// applied synchronously. The reconciler retries it until settled.
type StockAdjustment struct {
	ID        int64
	ProductID uuid.UUID
	Quantity  int64
	Reason    string
	CreatedAt time.Time
	Settled   bool
}
