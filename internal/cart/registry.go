package cart

import (
	"sync"
	"time"

	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/metrics"
)

// Registry maps shopper session ids to their in-memory carts and evicts
// carts that have been idle longer than the session TTL.
type Registry struct {
	mu      sync.Mutex
	carts   map[string]*Store
	ttl     time.Duration
	logger  *logger.Logger
	metrics *metrics.CartMetrics
}

// NewRegistry builds a registry with the given idle TTL.
func NewRegistry(ttl time.Duration, logg *logger.Logger, m *metrics.CartMetrics) *Registry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Registry{
		carts:   make(map[string]*Store),
		ttl:     ttl,
		logger:  logg,
		metrics: m,
	}
}

// Get returns the cart for the session, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.carts[sessionID]
	if !ok {
		store = NewStore()
		r.carts[sessionID] = store
		r.metrics.SetActiveCarts(len(r.carts))
	}
	return store
}

// Peek returns the cart for the session without creating one.
func (r *Registry) Peek(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.carts[sessionID]
	return store, ok
}

// Drop removes the session's cart outright.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	r.metrics.SetActiveCarts(len(r.carts))
}

// Len reports how many carts are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep evicts carts idle past the TTL and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for sessionID, store := range r.carts {
		if now.Sub(store.LastActive()) > r.ttl {
			delete(r.carts, sessionID)
			evicted++
		}
	}
	if evicted > 0 {
		r.metrics.SetActiveCarts(len(r.carts))
	}
	return evicted
}
