package restx

import "net/http"

// DefaultTokenPrefix is the authorization scheme used when none is given.
const DefaultTokenPrefix = "Bearer"

// Authenticator decorates an outgoing request. Implementations must be safe
// for concurrent use.
type Authenticator interface {
	Authenticate(r *http.Request)
}

// AuthenticatorFunc adapts a plain function to Authenticator.
type AuthenticatorFunc func(r *http.Request)

func (f AuthenticatorFunc) Authenticate(r *http.Request) { f(r) }

// TokenAuthenticator adds `Authorization: <prefix> <token>` to every request.
// It holds a fixed token and is immutable.
type TokenAuthenticator struct {
	token  string
	prefix string
}

// NewTokenAuthenticator returns an authenticator for token. An empty prefix
// means DefaultTokenPrefix.
func NewTokenAuthenticator(token, prefix string) *TokenAuthenticator {
	if prefix == "" {
		prefix = DefaultTokenPrefix
	}
	return &TokenAuthenticator{token: token, prefix: prefix}
}

// Token returns the token this authenticator was built with.
func (a *TokenAuthenticator) Token() string { return a.token }

// HeaderValue is the exact Authorization header value sent.
func (a *TokenAuthenticator) HeaderValue() string {
	return a.prefix + " " + a.token
}

func (a *TokenAuthenticator) Authenticate(r *http.Request) {
	r.Header.Set("Authorization", a.HeaderValue())
}
