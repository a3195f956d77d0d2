package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrIllegalTransition is returned when an order status change would move
// backward or out of a terminal state.
var ErrIllegalTransition = errors.New("illegal order status transition")

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
)

// CanTransitionTo reports whether a status change is legal. Transitions only
// move forward: pending -> confirmed, pending -> delivered,
// confirmed -> delivered. Delivered is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusDelivered
	case OrderStatusConfirmed:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a denormalized snapshot of one cart line taken at submission
// time. Later edits to the catalog item never touch it.
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	GroceryItemID uuid.UUID
	ItemName      string
	Quantity      int
	UnitPrice     float64
	Unit          string
}

type Order struct {
	ID             uuid.UUID
	CustomerName   string
	WhatsappNumber string
	Notes          string
	Status         OrderStatus
	Items          []OrderItem
	CreatedAt      time.Time
}

// Total sums unit price times quantity over the order's items.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
