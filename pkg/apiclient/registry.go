package apiclient

import (
	"errors"
	"fmt"
	"sync"
)

// Recipe describes how to build one client kind.
type Recipe struct {
	Scope   ScopeKind
	APIRoot string
	New     func(c *Client) APIClient
}

// Registry maps client kinds to their recipes. It is filled at startup and
// read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	recipes map[Kind]Recipe
}

func NewRegistry() *Registry {
	return &Registry{recipes: make(map[Kind]Recipe)}
}

// Register adds a recipe. Registering a kind twice is an error.
func (r *Registry) Register(kind Kind, recipe Recipe) error {
	if kind == "" {
		return errors.New("apiclient: empty client kind")
	}
	if recipe.New == nil {
		return fmt.Errorf("apiclient: recipe for %s has no constructor", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[kind]; ok {
		return fmt.Errorf("apiclient: client kind %s already registered", kind)
	}
	r.recipes[kind] = recipe
	return nil
}

// MustRegister is Register for startup code; it panics on error.
func (r *Registry) MustRegister(kind Kind, recipe Recipe) {
	if err := r.Register(kind, recipe); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(kind Kind) (Recipe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.recipes[kind]
	return recipe, ok
}
