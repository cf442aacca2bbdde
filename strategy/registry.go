package strategy

import (
	"fmt"
	"sort"
	"strings"
)

// Builder constructs an uninitialized strategy instance.
type Builder func() Strategy

// Registry maps strategy names to builders so callers can construct
// strategies from configuration.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder under name. Later registrations replace earlier
// ones, which lets tests override builtins.
func (r *Registry) Register(name string, b Builder) {
	r.builders[strings.ToLower(name)] = b
}

// New builds and initializes the named strategy with p.
func (r *Registry) New(name string, p Params) (Strategy, error) {
	b, ok := r.builders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)",
			name, strings.Join(r.List(), ", "))
	}
	s := b()
	if err := s.Init(p); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
