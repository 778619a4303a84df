package store

import (
	"sync"

	"github.com/AngelCh415/ADMARGIN_GO/internal/models"
)

// Registry holds the user-entered unit economics for one computation run. It
// is populated completely before the pipeline reads from it.
type Registry struct {
	mu      sync.RWMutex
	entries map[models.ProductKey]models.UnitEconomics
	order   []models.ProductKey // orden de inserción
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[models.ProductKey]models.UnitEconomics)}
}

// Set stores the economics for a product, overwriting any prior entry.
func (r *Registry) Set(key models.ProductKey, econ models.UnitEconomics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = econ
}

// Get returns the economics for a product. ok is false when the product was
// never set, or when every entered field is zero: an all-zero submission is
// treated as not configured, so no profit figure downstream can silently
// compute against empty economics.
func (r *Registry) Get(key models.ProductKey) (models.UnitEconomics, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	econ, ok := r.entries[key]
	if !ok || econ.AllZero() {
		return models.UnitEconomics{}, false
	}
	return econ, true
}

// Keys returns the product keys in insertion order.
func (r *Registry) Keys() []models.ProductKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ProductKey, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
