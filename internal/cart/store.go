package cart

import (
	"sync"
)

// Item is a purchasable line in the cart. Price is in whole currency units.
type Item struct {
	ID       string
	Name     string
	Price    int64
	Image    string
	Quantity int
}

// LineTotal returns price × quantity for the line.
func (it Item) LineTotal() int64 {
	return it.Price * int64(it.Quantity)
}

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
	EventCleared EventKind = "cleared"
)

// Event describes a single cart mutation delivered to subscribers.
type Event struct {
	Kind     EventKind
	ItemID   string
	Quantity int
	Version  uint64
}

// Store holds one shopper's cart lines in insertion order.
// At most one line exists per item id; a line reaching quantity 0 is dropped.
type Store struct {
	mu      sync.RWMutex
	items   []Item
	version uint64
	subs    map[int]func(Event)
	nextSub int
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{subs: map[int]func(Event){}}
}

// Add inserts the item with quantity 1, or increments the existing line by 1.
// The incoming Quantity field is ignored.
func (s *Store) Add(item Item) {
	s.mu.Lock()
	qty := 1
	if i := s.indexLocked(item.ID); i >= 0 {
		s.items[i].Quantity++
		qty = s.items[i].Quantity
	} else {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	ev := s.bumpLocked(EventAdded, item.ID, qty)
	s.mu.Unlock()
	s.publish(ev)
}

// UpdateQuantity sets the line quantity to max(0, n). A result of 0 removes the line.
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(id string, n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	kind := EventUpdated
	if n == 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		kind = EventRemoved
	} else {
		s.items[i].Quantity = n
	}
	ev := s.bumpLocked(kind, id, n)
	s.mu.Unlock()
	s.publish(ev)
}

// Remove deletes the line for id.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	ev := s.bumpLocked(EventRemoved, id, 0)
	s.mu.Unlock()
	s.publish(ev)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	ev := s.bumpLocked(EventCleared, "", 0)
	s.mu.Unlock()
	s.publish(ev)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the line for id.
func (s *Store) Item(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// Total is the sum of price × quantity over all lines.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, it := range s.items {
		total += it.LineTotal()
	}
	return total
}

// Count is the sum of quantities, as shown on the navbar badge.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version increases by one on every mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn for every subsequent mutation and returns a func that
// removes the subscription. fn runs outside the store lock.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = map[int]func(Event){}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) bumpLocked(kind EventKind, id string, qty int) Event {
	s.version++
	return Event{Kind: kind, ItemID: id, Quantity: qty, Version: s.version}
}

func (s *Store) publish(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
