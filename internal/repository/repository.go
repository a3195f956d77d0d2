package repository

import (
	"context"
	"errors"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrItemNotFound  = errors.New("grocery item not found")
	ErrOrderNotFound = errors.New("order not found")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type ItemRepository interface {
	// ListAvailable returns items with the availability flag set, ordered by
	// category then name. This is the storefront read.
	ListAvailable(ctx context.Context) ([]*domain.GroceryItem, error)

	// ListAll returns every item in the same order, for the admin panel.
	ListAll(ctx context.Context) ([]*domain.GroceryItem, error)

	CreateItem(ctx context.Context, item *domain.GroceryItem) error
	UpdateItem(ctx context.Context, item *domain.GroceryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// SetAvailability is a partial update flipping only the availability flag.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

type OrderRepository interface {
	// CreateOrder inserts the order row only. Item rows are written by a
	// separate CreateOrderItems call; there is no transaction spanning the
	// two writes.
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error

	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListOrders returns orders newest first with their item snapshots.
	ListOrders(ctx context.Context) ([]*domain.Order, error)

	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}
