package redisledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
)

const stockKeyPrefix = "stock:"

// reserveScript applies the availability check and the decrement atomically.
// Return codes: 1 reserved, 0 insufficient stock, -1 unknown product.
var reserveScript = redis.NewScript(`
local key = KEYS[1]
local quantity = tonumber(ARGV[1])

local current = redis.call('GET', key)
if not current then
	return -1
end

current = tonumber(current)
if current >= quantity then
	redis.call('DECRBY', key, quantity)
	return 1
end

return 0
`)

// Ledger is a Redis-backed stock ledger for hot reservation paths. Quantities
// are seeded from the catalog at startup via InitStock.
type Ledger struct {
	client redis.UniversalClient
}

// New creates a ledger on top of the provided Redis client.
func New(client redis.UniversalClient) *Ledger {
	return &Ledger{client: client}
}

// Reserve runs the conditional decrement script for the product key.
func (l *Ledger) Reserve(ctx context.Context, productID uuid.UUID, qty int64) error {
	key := stockKeyPrefix + productID.String()

	result, err := reserveScript.Run(ctx, l.client, []string{key}, qty).Int()
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}

	switch result {
	case 1:
		return nil
	case -1:
		return domainErrors.ErrProductNotFound
	default:
		return domainErrors.ErrInsufficientStock
	}
}

// Release restores a prior reservation.
func (l *Ledger) Release(ctx context.Context, productID uuid.UUID, qty int64) error {
	key := stockKeyPrefix + productID.String()
	if err := l.client.IncrBy(ctx, key, qty).Err(); err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	return nil
}

// SetStock overwrites the available quantity for the product.
func (l *Ledger) SetStock(ctx context.Context, productID uuid.UUID, qty int64) error {
	key := stockKeyPrefix + productID.String()
	return l.client.Set(ctx, key, qty, 0).Err()
}

// InitStock seeds the quantity only when the product key is absent. Counters
// that already reflect reservations must survive a restart, otherwise priming
// would resurrect sold units.
func (l *Ledger) InitStock(ctx context.Context, productID uuid.UUID, qty int64) error {
	key := stockKeyPrefix + productID.String()
	return l.client.SetNX(ctx, key, qty, 0).Err()
}

// Ping verifies connectivity.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
