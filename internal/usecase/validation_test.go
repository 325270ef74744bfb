package usecase

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
)

func TestValidateCart(t *testing.T) {
	productID := uuid.New()

	if err := ValidateCart(nil); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected empty order error, got %v", err)
	}
	if err := ValidateCart([]model.OrderLine{{ProductID: productID, Quantity: 0}}); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity error, got %v", err)
	}
	if err := ValidateCart([]model.OrderLine{{ProductID: productID, Quantity: 3}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDelivery(t *testing.T) {
	if err := ValidateDelivery(model.PaymentMethod("iou"), "0100", "addr"); !errors.Is(err, domainErrors.ErrInvalidPaymentMethod) {
		t.Fatalf("expected invalid payment method, got %v", err)
	}
	if err := ValidateDelivery(model.PaymentMethodCard, "", "addr"); !errors.Is(err, domainErrors.ErrMissingContact) {
		t.Fatalf("expected missing contact, got %v", err)
	}
	if err := ValidateDelivery(model.PaymentMethodCard, "0100", " "); !errors.Is(err, domainErrors.ErrMissingContact) {
		t.Fatalf("expected missing contact, got %v", err)
	}
	if err := ValidateDelivery(model.PaymentMethodCashOnDelivery, "0100", "addr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		limit      int
		offset     int
	}{
		{"defaults", 0, 0, 10, 0},
		{"page two", 2, 10, 10, 10},
		{"large size capped", 1, 500, 100, 0},
		{"negative values", -1, -5, 10, 0},
		{"deep page", 7, 20, 20, 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := NormalizePage(tc.page, tc.size)
			if limit != tc.limit || offset != tc.offset {
				t.Fatalf("expected %d/%d, got %d/%d", tc.limit, tc.offset, limit, offset)
			}
		})
	}
}
