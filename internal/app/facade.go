package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/model"
	"github.com/gradovikov/storefront/internal/domain/repository"
	"github.com/gradovikov/storefront/internal/pkg/auth"
	"github.com/gradovikov/storefront/internal/usecase"
)

// StoreFacade aggregates the use cases behind one surface consumed by the
// HTTP handlers, the middleware and the drift reconciler.
type StoreFacade struct {
	placement *usecase.PlacementUseCase
	orders    *usecase.OrderUseCase
	purchases *usecase.PurchaseUseCase
	directory repository.UserDirectory
	ledger    repository.StockLedger
	drift     repository.DriftJournal
	tokens    auth.Strategy
}

// NewStoreFacade constructs the facade.
func NewStoreFacade(
	placement *usecase.PlacementUseCase,
	orders *usecase.OrderUseCase,
	purchases *usecase.PurchaseUseCase,
	directory repository.UserDirectory,
	ledger repository.StockLedger,
	drift repository.DriftJournal,
	tokens auth.Strategy,
) *StoreFacade {
	return &StoreFacade{
		placement: placement,
		orders:    orders,
		purchases: purchases,
		directory: directory,
		ledger:    ledger,
		drift:     drift,
		tokens:    tokens,
	}
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, userID uuid.UUID, lines []model.OrderLine, payment model.PaymentMethod, mobile, address string) (*model.Order, error) {
	return f.placement.Place(ctx, userID, lines, payment, mobile, address)
}

func (f *StoreFacade) Order(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *StoreFacade) OrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]model.Order, int64, error) {
	return f.orders.ListByUser(ctx, userID, page, size)
}

func (f *StoreFacade) AllOrders(ctx context.Context, page, size int) ([]model.Order, int64, error) {
	return f.orders.ListAll(ctx, page, size)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StoreFacade) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return f.purchases.HasPurchased(ctx, userID, productID)
}

func (f *StoreFacade) ParseToken(token string) (uuid.UUID, error) {
	return f.tokens.ParseToken(token)
}

func (f *StoreFacade) UserRole(ctx context.Context, userID uuid.UUID) (model.Role, error) {
	return f.directory.Role(ctx, userID)
}

// PendingAdjustments returns unsettled drift journal entries for the reconciler.
func (f *StoreFacade) PendingAdjustments(ctx context.Context, limit int) ([]model.StockAdjustment, error) {
	return f.drift.Pending(ctx, limit)
}

// ApplyAdjustment retries a journaled compensating release. The row is
// claimed before the release runs and reopened when the release fails, so
// each adjustment reaches the ledger at most once.
func (f *StoreFacade) ApplyAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	if err := f.drift.Settle(ctx, adj.ID); err != nil {
		return fmt.Errorf("claim adjustment %d: %w", adj.ID, err)
	}
	if err := f.ledger.Release(ctx, adj.ProductID, adj.Quantity); err != nil {
		if roErr := f.drift.Reopen(ctx, adj.ID); roErr != nil {
			return fmt.Errorf("apply adjustment %d: %v: %w", adj.ID, err, roErr)
		}
		return fmt.Errorf("apply adjustment %d: %w", adj.ID, err)
	}
	return nil
}
