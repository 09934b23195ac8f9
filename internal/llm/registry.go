package llm

import (
	"fmt"
	"sync"
)

// Factory constructs the client for one provider.
type Factory func() (Client, error)

// Registry hands out one client per provider, constructing each lazily at
// most once per process. The first construction result, client or error,
// is returned to every later caller.
type Registry struct {
	factories map[Provider]Factory

	mu      sync.Mutex
	entries map[Provider]*entry
}

type entry struct {
	once   sync.Once
	client Client
	err    error
}

// NewRegistry builds a registry from per-provider factories.
func NewRegistry(factories map[Provider]Factory) *Registry {
	return &Registry{
		factories: factories,
		entries:   make(map[Provider]*entry, len(factories)),
	}
}

// Client returns the memoized client for p.
func (r *Registry) Client(p Provider) (Client, error) {
	factory, ok := r.factories[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}

	r.mu.Lock()
	e, ok := r.entries[p]
	if !ok {
		e = &entry{}
		r.entries[p] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.client, e.err = factory()
	})
	return e.client, e.err
}
