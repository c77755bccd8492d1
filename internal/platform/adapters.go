package platform

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/aussiebroadwan/dealerseed/pkg/apiclient"
	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

// Tokens is the part of authx.TokenSource the adapter factory needs.
type Tokens interface {
	Token(ctx context.Context) (string, error)
	Discard(ctx context.Context, token string) error
}

// AuthenticatedAdapters builds bearer-authenticated adapters for the platform
// API. The adapter built for a kind is reused while the token is unchanged; a
// new token yields a new adapter and existing ones are never modified.
type AuthenticatedAdapters struct {
	baseURL string
	tokens  Tokens
	factory restx.Factory
	options []restx.Option

	mu     sync.Mutex
	byKind map[apiclient.Kind]boundAdapter
}

type boundAdapter struct {
	token   string
	adapter restx.Adapter
}

var _ apiclient.AdapterFactory = (*AuthenticatedAdapters)(nil)

// NewAuthenticatedAdapters returns a factory for baseURL. opts are applied to
// every adapter before the authenticator.
func NewAuthenticatedAdapters(baseURL string, tokens Tokens, factory restx.Factory, opts ...restx.Option) *AuthenticatedAdapters {
	if factory == nil {
		factory = restx.NewFactory()
	}
	return &AuthenticatedAdapters{
		baseURL: baseURL,
		tokens:  tokens,
		factory: factory,
		options: opts,
		byKind:  make(map[apiclient.Kind]boundAdapter),
	}
}

// Adapter fetches the current token and returns the adapter bound to it.
func (a *AuthenticatedAdapters) Adapter(ctx context.Context, kind apiclient.Kind) (restx.Adapter, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if b, ok := a.byKind[kind]; ok && b.token == token {
		return b.adapter, nil
	}

	opts := append(slices.Clone(a.options), restx.WithAuthenticator(restx.NewTokenAuthenticator(token, "")))
	adapter := &rejectingAdapter{
		Adapter: a.factory.New(a.baseURL, opts...),
		token:   token,
		tokens:  a.tokens,
	}
	a.byKind[kind] = boundAdapter{token: token, adapter: adapter}
	return adapter, nil
}

// rejectingAdapter discards its token when the API answers 401, so clients
// resolved afterwards authenticate again. The failed call is still returned.
type rejectingAdapter struct {
	restx.Adapter
	token  string
	tokens Tokens
}

func (r *rejectingAdapter) Get(ctx context.Context, path string) (*restx.Response, error) {
	return r.Do(ctx, http.MethodGet, path, nil)
}

func (r *rejectingAdapter) Post(ctx context.Context, path string, body any) (*restx.Response, error) {
	return r.Do(ctx, http.MethodPost, path, body)
}

func (r *rejectingAdapter) Put(ctx context.Context, path string, body any) (*restx.Response, error) {
	return r.Do(ctx, http.MethodPut, path, body)
}

func (r *rejectingAdapter) Patch(ctx context.Context, path string, body any) (*restx.Response, error) {
	return r.Do(ctx, http.MethodPatch, path, body)
}

func (r *rejectingAdapter) Delete(ctx context.Context, path string) (*restx.Response, error) {
	return r.Do(ctx, http.MethodDelete, path, nil)
}

func (r *rejectingAdapter) Do(ctx context.Context, method, path string, body any) (*restx.Response, error) {
	resp, err := r.Adapter.Do(ctx, method, path, body)
	if restx.StatusCode(err) == http.StatusUnauthorized {
		if derr := r.tokens.Discard(context.WithoutCancel(ctx), r.token); derr != nil {
			err = errors.Join(err, derr)
		}
	}
	return resp, err
}
