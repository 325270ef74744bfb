package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog view consumed here: price and existence belong to the
// catalog, Quantity to the stock ledger. Quantity never goes below zero.
type Product struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int64
}
