package usecase

import (
	"strings"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
)

// ValidateCart rejects carts that must never reach the stock ledger.
func ValidateCart(lines []model.OrderLine) error {
	if len(lines) == 0 {
		return domainErrors.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domainErrors.ErrInvalidQuantity
		}
	}
	return nil
}

// ValidateDelivery checks payment method and delivery contact fields.
func ValidateDelivery(payment model.PaymentMethod, mobile, address string) error {
	if !payment.Valid() {
		return domainErrors.ErrInvalidPaymentMethod
	}
	if strings.TrimSpace(mobile) == "" || strings.TrimSpace(address) == "" {
		return domainErrors.ErrMissingContact
	}
	return nil
}

// Page size bounds, shared with the HTTP layer so response meta always
// reflects the limit actually applied.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage converts caller-supplied page/limit into limit/offset with the
// documented defaults: page 1, size 10, skip = (page-1)*size.
func NormalizePage(page, size int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size, (page - 1) * size
}
