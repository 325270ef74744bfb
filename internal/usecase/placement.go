package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
	"github.com/gradovikov/storefront/internal/domain/repository"
)

// PlacementUseCase converts a cart into a persisted order while keeping stock
// counters consistent. Reservations are made line by line; any failure after a
// partial reservation releases everything already reserved before the error is
// reported, so a rejected order never leaves stock decremented.
type PlacementUseCase struct {
	ledger  repository.StockLedger
	catalog repository.ProductCatalog
	orders  repository.OrderRepository
	drift   repository.DriftJournal
	logger  *slog.Logger
}

// NewPlacementUseCase constructs PlacementUseCase.
func NewPlacementUseCase(
	ledger repository.StockLedger,
	catalog repository.ProductCatalog,
	orders repository.OrderRepository,
	drift repository.DriftJournal,
	logger *slog.Logger,
) *PlacementUseCase {
	return &PlacementUseCase{ledger: ledger, catalog: catalog, orders: orders, drift: drift, logger: logger}
}

// Place validates the cart, reserves stock for every line, computes the total
// from catalog prices at commit time and persists the order. The returned
// error wraps a LineError for business rejections so callers can identify the
// offending product.
func (u *PlacementUseCase) Place(
	ctx context.Context,
	userID uuid.UUID,
	lines []model.OrderLine,
	payment model.PaymentMethod,
	mobile, address string,
) (*model.Order, error) {
	if err := ValidateCart(lines); err != nil {
		return nil, err
	}
	if err := ValidateDelivery(payment, mobile, address); err != nil {
		return nil, err
	}

	for i, line := range lines {
		if err := u.ledger.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			if rbErr := u.rollback(ctx, lines[:i]); rbErr != nil {
				return nil, fmt.Errorf("reservation rollback: %w", rbErr)
			}
			if errors.Is(err, domainErrors.ErrProductNotFound) || errors.Is(err, domainErrors.ErrInsufficientStock) {
				return nil, &domainErrors.LineError{ProductID: line.ProductID, Err: err}
			}
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
	}

	// The client never supplies the total; it is derived from catalog prices
	// as of this moment.
	total := decimal.Zero
	for _, line := range lines {
		price, err := u.catalog.UnitPrice(ctx, line.ProductID)
		if err != nil {
			if rbErr := u.rollback(ctx, lines); rbErr != nil {
				return nil, fmt.Errorf("pricing rollback: %w", rbErr)
			}
			if errors.Is(err, domainErrors.ErrProductNotFound) {
				return nil, &domainErrors.LineError{ProductID: line.ProductID, Err: domainErrors.ErrProductNotFound}
			}
			return nil, fmt.Errorf("price lookup: %w", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(line.Quantity)))
	}

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Lines:         lines,
		Total:         total,
		Status:        model.OrderStatusPending,
		PaymentMethod: payment,
		Mobile:        mobile,
		Address:       address,
		CreatedAt:     time.Now().UTC(),
	}

	if err := u.orders.Create(ctx, order); err != nil {
		// Stock must never stay decremented for an order that does not exist.
		if rbErr := u.rollback(ctx, lines); rbErr != nil {
			return nil, fmt.Errorf("persist order: %v: %w", err, rbErr)
		}
		return nil, fmt.Errorf("persist order: %w", err)
	}

	return order, nil
}

// rollback releases every reserved line. A release that fails is journaled
// for the reconciler; only when the journal write also fails does the drift
// become unrecoverable here and ErrStockDrift is returned.
func (u *PlacementUseCase) rollback(ctx context.Context, reserved []model.OrderLine) error {
	var unrecoverable bool
	for _, line := range reserved {
		err := u.ledger.Release(ctx, line.ProductID, line.Quantity)
		if err == nil {
			continue
		}
		u.logger.Error("compensating release failed",
			slog.String("product_id", line.ProductID.String()),
			slog.Int64("quantity", line.Quantity),
			slog.String("error", err.Error()),
		)
		if jerr := u.drift.Record(ctx, line.ProductID, line.Quantity, "release after failed placement"); jerr != nil {
			u.logger.Error("drift journal write failed",
				slog.String("product_id", line.ProductID.String()),
				slog.String("error", jerr.Error()),
			)
			unrecoverable = true
		}
	}
	if unrecoverable {
		return domainErrors.ErrStockDrift
	}
	return nil
}
