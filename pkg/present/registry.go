package present

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Factory builds a presenter writing to out.
type Factory func(out io.Writer) (Presenter, error)

// Registry stores presenter factories by name so the CLI and embedding
// applications can select an output channel from configuration.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("present: presenter name is required")
	}
	if factory == nil {
		return fmt.Errorf("present: factory for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("present: presenter %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds the named presenter.
func (r *Registry) New(name string, out io.Writer) (Presenter, error) {
	r.mu.RLock()
	factory, ok := r.factories[strings.TrimSpace(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("present: presenter %q not found", name)
	}
	return factory(out)
}

// List returns a sorted list of presenter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a presenter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[strings.TrimSpace(name)]
	return ok
}
