package authx

import (
	"log/slog"
	"time"

	"github.com/aussiebroadwan/dealerseed/pkg/cachex"
	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

// Option configures a TokenSource.
type Option func(*TokenSource)

// WithCache shares c between token sources or processes.
func WithCache(c cachex.Cache) Option {
	return func(s *TokenSource) {
		s.cache = c
	}
}

func WithCacheName(name string) Option {
	return func(s *TokenSource) {
		if name != "" {
			s.cacheName = name
		}
	}
}

// WithSafetyMargin sets how long before the advertised expiry a token stops
// being served from the cache.
func WithSafetyMargin(d time.Duration) Option {
	return func(s *TokenSource) {
		if d >= 0 {
			s.margin = d
		}
	}
}

// WithTimeout bounds each identity request.
func WithTimeout(d time.Duration) Option {
	return func(s *TokenSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithAdapterFactory sets the factory used for the unauthenticated identity
// adapter.
func WithAdapterFactory(f restx.Factory) Option {
	return func(s *TokenSource) {
		s.adapters = f
	}
}

// WithClock replaces time.Now. It also drives the default memory cache.
func WithClock(now func() time.Time) Option {
	return func(s *TokenSource) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *TokenSource) {
		s.logger = l
	}
}
