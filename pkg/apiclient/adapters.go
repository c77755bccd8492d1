package apiclient

import (
	"context"

	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

// AdapterFactory builds the REST adapter a client of the given kind talks
// through. It may perform I/O, such as fetching a token.
type AdapterFactory interface {
	Adapter(ctx context.Context, kind Kind) (restx.Adapter, error)
}

// AdapterFactoryFunc adapts a function to AdapterFactory.
type AdapterFactoryFunc func(ctx context.Context, kind Kind) (restx.Adapter, error)

func (f AdapterFactoryFunc) Adapter(ctx context.Context, kind Kind) (restx.Adapter, error) {
	return f(ctx, kind)
}

// StaticAdapters returns anonymous adapters for a fixed base URL. BaseURLs
// overrides the base URL per kind.
type StaticAdapters struct {
	BaseURL  string
	BaseURLs map[Kind]string
	Factory  restx.Factory
	Options  []restx.Option
}

func (s StaticAdapters) Adapter(_ context.Context, kind Kind) (restx.Adapter, error) {
	factory := s.Factory
	if factory == nil {
		factory = restx.NewFactory()
	}
	base := s.BaseURL
	if u, ok := s.BaseURLs[kind]; ok {
		base = u
	}
	return factory.New(base, s.Options...), nil
}
