package plugin

import (
	"errors"
	"sync"

	"researchpub/internal/fields"
	"researchpub/internal/posttype"
)

var (
	// ErrNotFound is returned when no content type or field group is registered under a name.
	ErrNotFound = errors.New("not registered")
	// ErrInvalid is returned for registrations without a name or key.
	ErrInvalid = errors.New("invalid registration")
)

// Registry is an in-memory Host. It keeps the latest registration per name
// and a REST route table that is rebuilt on FlushRewriteRules.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]posttype.Descriptor
	groups map[string]fields.Group
	routes map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		types:  make(map[string]posttype.Descriptor),
		groups: make(map[string]fields.Group),
		routes: make(map[string]string),
	}
}

func (r *Registry) RegisterContentType(name string, d posttype.Descriptor) error {
	if name == "" {
		return ErrInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = d
	return nil
}

func (r *Registry) RegisterFieldGroup(g fields.Group) error {
	if g.Key == "" {
		return ErrInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[g.Key] = g
	return nil
}

// FlushRewriteRules rebuilds the route table from the registered types that
// are shown in REST. A type without an explicit REST base uses its name.
func (r *Registry) FlushRewriteRules() {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := make(map[string]string, len(r.types))
	for name, d := range r.types {
		if !d.ShowInREST {
			continue
		}
		base := d.RESTBase
		if base == "" {
			base = name
		}
		routes[base] = name
	}
	r.routes = routes
}

// ContentType returns the descriptor registered under name.
func (r *Registry) ContentType(name string) (posttype.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[name]
	if !ok {
		return posttype.Descriptor{}, ErrNotFound
	}
	return d, nil
}

// FieldGroup returns the field group registered under key.
func (r *Registry) FieldGroup(key string) (fields.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[key]
	if !ok {
		return fields.Group{}, ErrNotFound
	}
	return g, nil
}

// Route resolves a REST base to a content type name using the table built
// by the last flush.
func (r *Registry) Route(base string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.routes[base]
	return name, ok
}
