package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
	"github.com/chrisapx/farm-to-table-fav/internal/repository"
)

// Service serves the storefront catalog. Reads go through the cache with
// singleflight stampede protection; cache failures fall back to the
// repository so the storefront keeps working without Redis.
type Service struct {
	repo  repository.ItemRepository
	cache ItemCache
	sfg   singleflight.Group
}

func NewService(repo repository.ItemRepository, cache ItemCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Available returns the available items ordered by category then name.
func (s *Service) Available(ctx context.Context) ([]*domain.GroceryItem, error) {
	v, err, _ := s.sfg.Do(cacheKey, func() (interface{}, error) {

		items, err := s.cache.Get(ctx)
		if err == nil {
			return items, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("catalog cache get error: %v", err) // log cache error but continue
		}

		items, errList := s.repo.ListAvailable(ctx)
		if errList != nil {
			return nil, errList
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, items); errSet != nil {
				log.Printf("catalog cache set error: %v", errSet)
			}
		}()

		return items, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.GroceryItem), nil
}

// Search applies the storefront filters to the available items.
func (s *Service) Search(ctx context.Context, search, category string) ([]*domain.GroceryItem, error) {
	items, err := s.Available(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, search, category), nil
}

// Categories returns the category chips for the currently available items.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.Available(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(items), nil
}

// Invalidate drops the cached catalog. Called after every admin item
// mutation so the next storefront read sees fresh data.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}
