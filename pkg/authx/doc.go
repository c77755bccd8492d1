// Package authx obtains the platform bearer token from the identity endpoint
// and keeps it in a shared cache until shortly before it expires.
//
// A TokenSource is created once per process and passed to everything that
// needs authenticated access:
//
//	src := authx.NewTokenSource(identityURL,
//		authx.WithCache(cachex.NewMemory(nil)),
//	)
//	token, err := src.Token(ctx)
//
// Concurrent callers that find the cache empty share a single identity
// request. Failures are reported as ErrAuthentication and never leave a
// partial entry behind.
package authx
