package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists the order together with all of its lines atomically.
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	// ListByUser returns one page of the user's orders, newest first, and the
	// unpaginated count of all orders owned by the user.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Order, int64, error)
	// ListAll returns one page across all users and the total order count.
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, int64, error)
	// UpdateStatus sets the status and returns the updated order.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
	// ContainsProduct reports whether any order of the user has a line
	// referencing the product.
	ContainsProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}
