package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrDuplicate is returned when a name is already bound to a descriptor.
var ErrDuplicate = errors.New("name already registered")

// ErrNotFound is returned by Rebind when the source name is not bound.
var ErrNotFound = errors.New("name not registered")

// Registry holds the name bindings for a single descriptor universe.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New creates and initializes an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		entries: make(map[string]T),
	}
}

// Register binds name to d. If the name is already bound the existing
// binding is kept and ErrDuplicate is returned.
func (r *Registry[T]) Register(name string, d T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		slog.Debug("Registration dropped, name already bound.", "name", name)
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	slog.Debug("Registering type.", "name", name)
	r.entries[name] = d
	return nil
}

// Lookup returns the descriptor bound to name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	return d, ok
}

// Rebind moves the binding of from to to. The old name is released only
// when the move succeeds; a bound to or a missing from leaves the registry
// unchanged.
func (r *Registry[T]) Rebind(from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.entries[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, from)
	}
	if _, exists := r.entries[to]; exists {
		slog.Debug("Rebind dropped, name already bound.", "from", from, "to", to)
		return fmt.Errorf("%w: %q", ErrDuplicate, to)
	}
	slog.Debug("Rebinding type.", "from", from, "to", to)
	delete(r.entries, from)
	r.entries[to] = d
	return nil
}

// All returns a snapshot of every binding. The returned map is owned by the
// caller.
func (r *Registry[T]) All() map[string]T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}

// Names returns all bound names in lexical order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := maps.Keys(r.entries)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of bindings.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
