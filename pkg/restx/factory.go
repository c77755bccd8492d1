package restx

import "slices"

// Factory builds adapters. Each call yields an independent adapter.
type Factory interface {
	New(baseURL string, opts ...Option) Adapter
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(baseURL string, opts ...Option) Adapter

func (f FactoryFunc) New(baseURL string, opts ...Option) Adapter { return f(baseURL, opts...) }

// DefaultFactory builds RestAdapters. Defaults are applied before the
// per-call options, so a call can override any of them.
type DefaultFactory struct {
	Defaults []Option
}

func NewFactory(defaults ...Option) *DefaultFactory {
	return &DefaultFactory{Defaults: defaults}
}

func (f *DefaultFactory) New(baseURL string, opts ...Option) Adapter {
	all := append(slices.Clone(f.Defaults), opts...)
	return NewAdapter(baseURL, all...)
}
