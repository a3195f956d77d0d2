package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Line is one catalog item and its selected quantity. Price and unit are
// captured at add time so later catalog edits don't move an in-progress cart.
type Line struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Unit     string    `json:"unit"`
	Quantity int       `json:"quantity"`
}

// Entry is what AddItem accepts: a Line without a quantity.
type Entry struct {
	ItemID uuid.UUID
	Name   string
	Price  float64
	Unit   string
}

// Snapshot is the cart state handed to observers: the lines at notification
// time plus the derived total and count.
type Snapshot struct {
	Lines []Line
	Total float64
	Count int
}

// Store holds the in-progress selection as an ordered list of lines
// (insertion order) and a registry of change observers. Every mutation is
// applied and all observers notified under one lock acquisition, so
// operations never interleave. Observers receive a snapshot rather than
// reading back into the store, which would deadlock.
type Store struct {
	mu          sync.Mutex
	lines       []Line
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers an observer called synchronously after every mutation,
// in registration order. The returned function unregisters it; calling it
// more than once is a no-op.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// AddItem appends a new line with quantity 1, or increments the quantity of
// the existing line for the same item. It always succeeds.
func (s *Store) AddItem(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == entry.ItemID {
			s.lines[i].Quantity++
			s.notifyLocked()
			return
		}
	}
	s.lines = append(s.lines, Line{
		ItemID:   entry.ItemID,
		Name:     entry.Name,
		Price:    entry.Price,
		Unit:     entry.Unit,
		Quantity: 1,
	})
	s.notifyLocked()
}

// RemoveItem deletes the line for the given item if present. Absent ids are
// not an error.
func (s *Store) RemoveItem(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ItemID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.notifyLocked()
}

// UpdateQuantity overwrites the line's quantity. A quantity of zero or less
// removes the line entirely. Absent ids are a no-op.
func (s *Store) UpdateQuantity(id uuid.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		for i, line := range s.lines {
			if line.ItemID == id {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				break
			}
		}
		s.notifyLocked()
		return
	}

	for i := range s.lines {
		if s.lines[i].ItemID == id {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.notifyLocked()
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.notifyLocked()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Line, len(s.lines))
	copy(items, s.lines)
	return items
}

// Total is recomputed from the current lines on every call, never cached.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Count returns the sum of quantities across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *Store) notifyLocked() {
	if len(s.subscribers) == 0 {
		return
	}

	snap := Snapshot{Lines: make([]Line, len(s.lines))}
	copy(snap.Lines, s.lines)
	for _, line := range s.lines {
		snap.Total += line.Price * float64(line.Quantity)
		snap.Count += line.Quantity
	}

	for _, sub := range s.subscribers {
		sub.fn(snap)
	}
}
