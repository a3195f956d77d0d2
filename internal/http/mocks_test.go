package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chrisapx/farm-to-table-fav/internal/catalog"
	"github.com/chrisapx/farm-to-table-fav/internal/domain"
	"github.com/chrisapx/farm-to-table-fav/internal/repository"
)

// --- item repository mock ---

type itemRepoMock struct {
	m     sync.Mutex
	items []*domain.GroceryItem
	err   error

	created     *domain.GroceryItem
	updated     *domain.GroceryItem
	deleted     uuid.UUID
	availabilID uuid.UUID
	available   bool
}

func (m *itemRepoMock) ListAvailable(context.Context) ([]*domain.GroceryItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var available []*domain.GroceryItem
	for _, item := range m.items {
		if item.Available {
			available = append(available, item)
		}
	}
	return available, nil
}

func (m *itemRepoMock) ListAll(context.Context) ([]*domain.GroceryItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *itemRepoMock) CreateItem(_ context.Context, item *domain.GroceryItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = item
	m.items = append(m.items, item)
	return nil
}

func (m *itemRepoMock) UpdateItem(_ context.Context, item *domain.GroceryItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.updated = item
	return nil
}

func (m *itemRepoMock) DeleteItem(_ context.Context, id uuid.UUID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.deleted = id
	return nil
}

func (m *itemRepoMock) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.availabilID = id
	m.available = available
	return nil
}

// --- order repository mock ---

type orderRepoMock struct {
	m      sync.Mutex
	orders []*domain.Order
	err    error

	statusID  uuid.UUID
	newStatus domain.OrderStatus
}

func (m *orderRepoMock) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *orderRepoMock) CreateOrderItems(context.Context, []domain.OrderItem) error {
	return m.err
}

func (m *orderRepoMock) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, order := range m.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *orderRepoMock) ListOrders(context.Context) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *orderRepoMock) UpdateOrderStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.statusID = id
	m.newStatus = status
	return nil
}

// --- catalog cache mock ---

type cacheMock struct {
	m     sync.Mutex
	items []*domain.GroceryItem
}

func (m *cacheMock) Get(context.Context) ([]*domain.GroceryItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.items == nil {
		return nil, catalog.ErrCacheMiss
	}
	return m.items, nil
}

func (m *cacheMock) Set(_ context.Context, items []*domain.GroceryItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.items = items
	return nil
}

func (m *cacheMock) Delete(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.items = nil
	return nil
}

// --- session store mock ---

type sessionStoreMock struct {
	m        sync.Mutex
	sessions map[string]bool
}

func newSessionStoreMock() *sessionStoreMock {
	return &sessionStoreMock{sessions: make(map[string]bool)}
}

func (s *sessionStoreMock) Save(_ context.Context, token string, _ time.Duration) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.sessions[token] = true
	return nil
}

func (s *sessionStoreMock) Exists(_ context.Context, token string) (bool, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.sessions[token], nil
}

func (s *sessionStoreMock) Delete(_ context.Context, token string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.sessions, token)
	return nil
}
