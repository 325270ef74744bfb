package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, lines []model.OrderLine, payment model.PaymentMethod, mobile, address string) (*model.Order, error)
	Order(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	OrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]model.Order, int64, error)
	AllOrders(ctx context.Context, page, size int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

// PurchaseFacade answers purchase verification queries.
type PurchaseFacade interface {
	HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// DirectoryFacade covers request identity: token verification and role lookup.
type DirectoryFacade interface {
	ParseToken(token string) (uuid.UUID, error)
	UserRole(ctx context.Context, userID uuid.UUID) (model.Role, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	OrderFacade
	PurchaseFacade
	DirectoryFacade
}
