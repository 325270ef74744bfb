package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCatalog is the external catalog interface consumed here. The catalog
// owns price and existence; the stock ledger owns only quantity, even when
// both are backed by the same record.
type ProductCatalog interface {
	Exists(ctx context.Context, productID uuid.UUID) (bool, error)
	UnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}
