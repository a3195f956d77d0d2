package domain

import (
	"time"

	"github.com/google/uuid"
)

// GroceryItem is a sellable catalog entry. It is owned by the admin panel;
// the storefront only ever reads entries where Available is true.
type GroceryItem struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         float64
	Unit          string
	Category      string
	ImageURL      string
	Available     bool
	StockQuantity int
	CreatedAt     time.Time
}
