package usecase

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
	"github.com/gradovikov/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order lookup and status transitions.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Get returns a single order by id.
func (u *OrderUseCase) Get(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByUser returns one page of the user's orders plus the unpaginated count.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]model.Order, int64, error) {
	limit, offset := NormalizePage(page, size)
	return u.orders.ListByUser(ctx, userID, limit, offset)
}

// ListAll returns one page across all users plus the total count.
func (u *OrderUseCase) ListAll(ctx context.Context, page, size int) ([]model.Order, int64, error) {
	limit, offset := NormalizePage(page, size)
	return u.orders.ListAll(ctx, limit, offset)
}

// UpdateStatus sets the order status. Any known status may replace any other;
// transition order is intentionally not enforced.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}
