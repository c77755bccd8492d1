package restx

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option configures an adapter at construction.
type Option func(*RestAdapter)

// WithTimeout bounds every call made through the adapter, including reading
// the response body. Zero means no adapter-level timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *RestAdapter) {
		a.timeout = d
	}
}

// WithAuthenticator decorates every request with auth.
func WithAuthenticator(auth Authenticator) Option {
	return func(a *RestAdapter) {
		a.authenticator = auth
	}
}

// WithHTTPClient replaces the default client (which logs through slogx).
func WithHTTPClient(c *http.Client) Option {
	return func(a *RestAdapter) {
		a.httpClient = c
	}
}

// WithRateLimiter makes every call wait for a token from l first. The limiter
// may be shared between adapters to cap the total rate against one API.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(a *RestAdapter) {
		a.limiter = l
	}
}

// WithLogger sets the logger used by the default client.
func WithLogger(l *slog.Logger) Option {
	return func(a *RestAdapter) {
		a.logger = l
	}
}

// WithHeader adds a static header to every request.
func WithHeader(key, value string) Option {
	return func(a *RestAdapter) {
		if a.headers == nil {
			a.headers = make(http.Header)
		}
		a.headers.Set(key, value)
	}
}
