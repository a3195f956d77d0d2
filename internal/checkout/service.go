package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/chrisapx/farm-to-table-fav/internal/cart"
	"github.com/chrisapx/farm-to-table-fav/internal/domain"
	"github.com/chrisapx/farm-to-table-fav/internal/notify"
	"github.com/chrisapx/farm-to-table-fav/internal/repository"
)

// Request carries the contact fields collected alongside the cart.
type Request struct {
	CustomerName   string
	WhatsappNumber string
	Notes          string
}

// Service turns the current cart plus contact details into persisted
// order and order-item rows.
type Service struct {
	store     *cart.Store
	repo      repository.OrderRepository
	publisher notify.Publisher
	inFlight  atomic.Bool
}

func NewService(store *cart.Store, repo repository.OrderRepository, publisher notify.Publisher) *Service {
	return &Service{
		store:     store,
		repo:      repo,
		publisher: publisher,
	}
}

// Submit validates the request, writes the order row and then the item
// snapshot rows, and clears the cart on full success.
//
// The two writes are deliberately not transactional: a failure after the
// order insert leaves the order row without items, matching the upstream
// behavior this service replaces. Only one submission may run at a time;
// a concurrent call gets ErrCheckoutInFlight.
func (s *Service) Submit(ctx context.Context, req Request) (*domain.Order, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInFlight
	}
	defer s.inFlight.Store(false)

	name := strings.TrimSpace(req.CustomerName)
	number := strings.TrimSpace(req.WhatsappNumber)
	if name == "" || number == "" {
		return nil, ErrMissingContact
	}

	lines := s.store.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:             uuid.New(),
		CustomerName:   name,
		WhatsappNumber: number,
		Notes:          strings.TrimSpace(req.Notes),
		Status:         domain.OrderStatusPending,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ID:            uuid.New(),
			OrderID:       order.ID,
			GroceryItemID: line.ItemID,
			ItemName:      line.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.Price,
			Unit:          line.Unit,
		}
	}

	if err := s.repo.CreateOrderItems(ctx, items); err != nil {
		// The order row already exists without its items. The cart is left
		// intact so the customer can retry.
		return nil, fmt.Errorf("create order items: %w", err)
	}
	order.Items = items

	s.store.Clear()

	if err := s.publisher.OrderPlaced(ctx, order); err != nil {
		log.Printf("order placed notification failed for %v: %v", order.ID, err)
	}

	return order, nil
}
