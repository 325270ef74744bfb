package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/repository"
)

// PurchaseUseCase answers whether a user has bought a product. The review
// subsystem consults it before accepting a review.
type PurchaseUseCase struct {
	users   repository.UserDirectory
	catalog repository.ProductCatalog
	orders  repository.OrderRepository
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(users repository.UserDirectory, catalog repository.ProductCatalog, orders repository.OrderRepository) *PurchaseUseCase {
	return &PurchaseUseCase{users: users, catalog: catalog, orders: orders}
}

// HasPurchased reports whether any order of the user contains the product.
// A dangling user or product yields false, not an error: an unknown identity
// cannot have purchased anything.
func (u *PurchaseUseCase) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	userExists, err := u.users.Exists(ctx, userID)
	if err != nil {
		return false, err
	}
	if !userExists {
		return false, nil
	}

	productExists, err := u.catalog.Exists(ctx, productID)
	if err != nil {
		return false, err
	}
	if !productExists {
		return false, nil
	}

	return u.orders.ContainsProduct(ctx, userID, productID)
}
