package apiclient

import (
	"fmt"

	"github.com/google/uuid"
)

// Factory resolves registered kinds into scoped clients.
type Factory struct {
	registry *Registry
	adapters AdapterFactory
}

func NewFactory(registry *Registry, adapters AdapterFactory) *Factory {
	return &Factory{registry: registry, adapters: adapters}
}

// Resolve builds an unscoped client.
func (f *Factory) Resolve(kind Kind) (APIClient, error) {
	return f.resolve(kind, NoScope())
}

// ResolveDealer builds a client bound to dealerID.
func (f *Factory) ResolveDealer(kind Kind, dealerID uuid.UUID) (DealerScopedClient, error) {
	c, err := f.resolve(kind, ForDealer(dealerID))
	if err != nil {
		return nil, err
	}
	dc, ok := c.(DealerScopedClient)
	if !ok {
		return nil, fmt.Errorf("%w: %s built %T", ErrScopeMismatch, kind, c)
	}
	return dc, nil
}

// ResolveLocation builds a client bound to one location of dealerID.
func (f *Factory) ResolveLocation(kind Kind, dealerID, locationID uuid.UUID) (LocationScopedClient, error) {
	c, err := f.resolve(kind, ForLocation(dealerID, locationID))
	if err != nil {
		return nil, err
	}
	lc, ok := c.(LocationScopedClient)
	if !ok {
		return nil, fmt.Errorf("%w: %s built %T", ErrScopeMismatch, kind, c)
	}
	return lc, nil
}

func (f *Factory) resolve(kind Kind, scope Scope) (APIClient, error) {
	recipe, ok := f.registry.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, kind)
	}
	if recipe.Scope != scope.Kind() {
		return nil, fmt.Errorf("%w: %s requires %s scope, got %s", ErrScopeMismatch, kind, recipe.Scope, scope.Kind())
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	base := newClient(kind, scope, recipe.APIRoot, f.adapters)
	c := recipe.New(base)
	if c == nil || c.Base() != base {
		return nil, fmt.Errorf("apiclient: recipe for %s did not wrap the client it was given", kind)
	}
	return c, nil
}

// As converts a resolved client to its concrete type.
func As[T APIClient](c APIClient, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("apiclient: %s client is %T, not %T", c.Base().Kind(), c, zero)
	}
	return t, nil
}
