package authx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/dealerseed/pkg/cachex"
	"github.com/aussiebroadwan/dealerseed/pkg/restx"
	"github.com/aussiebroadwan/dealerseed/pkg/slogx"
)

// ErrAuthentication is returned when the identity endpoint cannot be reached,
// answers with a non-success status, or returns an unusable payload.
var ErrAuthentication = errors.New("authx: authentication failure")

const (
	DefaultCacheName    = "PlatformToken"
	DefaultSafetyMargin = 60 * time.Second
	DefaultTimeout      = 30 * time.Second
)

// AccessToken is the identity endpoint payload.
type AccessToken struct {
	Value     string `json:"access_token"`
	ExpiresIn int64  `json:"expires_in"`
}

// TokenSource fetches and caches the platform bearer token.
type TokenSource struct {
	identityURL string
	adapters    restx.Factory
	cache       cachex.Cache
	cacheName   string
	margin      time.Duration
	timeout     time.Duration
	now         func() time.Time
	logger      *slog.Logger

	group singleflight.Group
}

// NewTokenSource returns a source that POSTs to identityURL on a cache miss.
// Without options it uses a private in-memory cache and the default restx
// factory.
func NewTokenSource(identityURL string, opts ...Option) *TokenSource {
	s := &TokenSource{
		identityURL: identityURL,
		cacheName:   DefaultCacheName,
		margin:      DefaultSafetyMargin,
		timeout:     DefaultTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.adapters == nil {
		s.adapters = restx.NewFactory()
	}
	if s.cache == nil {
		s.cache = cachex.NewMemory(s.now)
	}
	return s
}

// Token returns a bearer token that is valid at the time of the call. A
// cached token is returned without any I/O. On a miss one identity request is
// made on behalf of every concurrent caller; each caller stops waiting when
// its own ctx ends, without disturbing the shared request.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if token, ok, err := s.cached(ctx); err != nil || ok {
		return token, err
	}

	// The shared fetch must not die with whichever caller happened to start it.
	ch := s.group.DoChan(s.cacheName, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("authx: waiting for token: %w", ctx.Err())
	}
}

// Invalidate drops the cached token so the next Token call fetches a new one.
func (s *TokenSource) Invalidate(ctx context.Context) error {
	if err := s.cache.Delete(ctx, s.cacheName); err != nil {
		return fmt.Errorf("authx: invalidate token: %w", err)
	}
	s.log(ctx).Debug("platform token invalidated", "cache", s.cacheName)
	return nil
}

// Discard drops the cached token only if it is still token. Callers that saw
// token rejected use it so a stale rejection cannot evict a newer token. The
// check and the delete happen in one cache operation.
func (s *TokenSource) Discard(ctx context.Context, token string) error {
	removed, err := s.cache.DeleteIf(ctx, s.cacheName, token)
	if err != nil {
		return fmt.Errorf("authx: discard token: %w", err)
	}
	if removed {
		s.log(ctx).Debug("rejected platform token discarded", "cache", s.cacheName)
	}
	return nil
}

func (s *TokenSource) cached(ctx context.Context) (string, bool, error) {
	entry, ok, err := s.cache.Get(ctx, s.cacheName)
	if err != nil {
		return "", false, fmt.Errorf("authx: read token cache: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// refresh runs inside the single-flight group.
func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	// Another flight may have finished between our miss and joining this one.
	if token, ok, err := s.cached(ctx); err != nil || ok {
		return token, err
	}

	logger := s.log(ctx)
	issuedAt := s.now()
	logger.Debug("fetching platform token", "identity_url", s.identityURL)

	tok, err := s.fetch(ctx)
	if err != nil {
		logger.Debug("platform token fetch failed", "error", err)
		return "", err
	}

	lifetime, err := s.lifetime(tok, issuedAt)
	if err != nil {
		return "", err
	}
	if lifetime <= 0 {
		return "", fmt.Errorf("%w: token already expired", ErrAuthentication)
	}

	validUntil := issuedAt.Add(lifetime - s.margin)
	if !validUntil.After(issuedAt) {
		logger.Debug("platform token lifetime within safety margin, not caching",
			"lifetime", lifetime, "margin", s.margin)
		return tok.Value, nil
	}

	if err := s.cache.Put(ctx, s.cacheName, cachex.Entry{Value: tok.Value, ExpiresAt: validUntil}); err != nil {
		return "", fmt.Errorf("authx: store token: %w", err)
	}
	logger.Debug("platform token cached", "valid_until", validUntil)
	return tok.Value, nil
}

func (s *TokenSource) fetch(ctx context.Context) (AccessToken, error) {
	adapter := s.adapters.New(s.identityURL,
		restx.WithTimeout(s.timeout),
		restx.WithLogger(s.logger),
	)

	resp, err := adapter.Post(ctx, "", nil)
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: identity request: %w", ErrAuthentication, err)
	}

	var tok AccessToken
	if err := resp.Decode(&tok); err != nil {
		return AccessToken{}, fmt.Errorf("%w: decode token payload: %w", ErrAuthentication, err)
	}
	if tok.Value == "" {
		return AccessToken{}, fmt.Errorf("%w: token payload has no access_token", ErrAuthentication)
	}
	return tok, nil
}

// lifetime prefers expires_in and falls back to the exp claim when the token
// is a JWT.
func (s *TokenSource) lifetime(tok AccessToken, issuedAt time.Time) (time.Duration, error) {
	if tok.ExpiresIn > 0 {
		return time.Duration(tok.ExpiresIn) * time.Second, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.Value, claims); err != nil {
		return 0, fmt.Errorf("%w: token payload has no expires_in", ErrAuthentication)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, fmt.Errorf("%w: token payload has no expires_in or exp claim", ErrAuthentication)
	}
	return exp.Sub(issuedAt), nil
}

func (s *TokenSource) log(ctx context.Context) *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slogx.FromContext(ctx)
}
