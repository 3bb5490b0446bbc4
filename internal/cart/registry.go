package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long a cart nobody reads or writes survives before
// Sweep drops it.
const DefaultIdleTTL = 24 * time.Hour

// Registry is the process-wide set of carts keyed by cart id.
type Registry struct {
	mu      sync.Mutex
	carts   map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	onEvent func(cartID string, ev Event)
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithIdleTTL overrides DefaultIdleTTL.
func WithIdleTTL(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithClock swaps the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithEventHook receives every mutation of every cart the registry creates.
func WithEventHook(fn func(cartID string, ev Event)) Option {
	return func(r *Registry) { r.onEvent = fn }
}

// NewRegistry builds an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		carts: map[string]*entry{},
		ttl:   DefaultIdleTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewID returns a fresh random cart id.
func NewID() string {
	return uuid.NewString()
}

// Get returns the cart for id, creating it when absent. Empty ids get an
// unregistered throwaway store so callers never see nil.
func (r *Registry) Get(id string) *Store {
	id = strings.TrimSpace(id)
	if id == "" {
		return NewStore()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.carts[id]
	if !ok {
		s := NewStore()
		if r.onEvent != nil {
			hook := r.onEvent
			s.Subscribe(func(ev Event) { hook(id, ev) })
		}
		e = &entry{store: s}
		r.carts[id] = e
	}
	e.lastSeen = r.now()
	return e.store
}

// Lookup returns the cart for id without creating it. A hit counts as
// activity and restarts the idle clock.
func (r *Registry) Lookup(id string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.carts[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

// Len reports how many carts are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep drops carts idle for longer than the TTL and returns how many were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, e := range r.carts {
		if e.lastSeen.Before(cutoff) {
			delete(r.carts, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.Sweep()
		}
	}
}
