package catalog

import (
	"context"
	"errors"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
)

type ItemCache interface {
	Get(ctx context.Context) ([]*domain.GroceryItem, error)
	Set(ctx context.Context, items []*domain.GroceryItem) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
