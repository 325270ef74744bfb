package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// PaymentMethod describes how the order is paid for.
type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Valid reports whether the payment method is supported.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// OrderLine is one product/quantity pair within an order.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Order is a purchase record. Lines and amounts never change after creation;
// only Status does.
type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Lines         []OrderLine
	Total         decimal.Decimal
	Status        OrderStatus
	PaymentMethod PaymentMethod
	Mobile        string
	Address       string
	CreatedAt     time.Time
}
