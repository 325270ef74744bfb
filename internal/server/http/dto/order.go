package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one cart line in an order creation payload.
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// OrderCreateRequest describes the order creation payload.
type OrderCreateRequest struct {
	Lines         []OrderLineRequest `json:"lines"`
	PaymentMethod string             `json:"payment_method"`
	Mobile        string             `json:"mobile"`
	Address       string             `json:"address"`
}

// StatusUpdateRequest carries the new status for an order.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse mirrors one persisted order line.
type OrderLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	Lines         []OrderLineResponse `json:"lines"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	Mobile        string              `json:"mobile"`
	Address       string              `json:"address"`
	CreatedAt     time.Time           `json:"created_at"`
}

// PageMeta echoes pagination parameters plus the unfiltered total.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// OrdersPageResponse is one page of orders with its pagination meta.
type OrdersPageResponse struct {
	Data []OrderResponse `json:"data"`
	Meta PageMeta        `json:"meta"`
}

// ErrorResponse carries a user-facing rejection reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
