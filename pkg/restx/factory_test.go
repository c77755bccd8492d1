package restx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultFactoryOverloads(t *testing.T) {
	t.Parallel()

	f := NewFactory()
	auth := NewTokenAuthenticator("abc", "")

	plain := f.New("https://api.example.com/").(*RestAdapter)
	require.Equal(t, "https://api.example.com", plain.BaseURL())
	require.Zero(t, plain.Timeout())
	require.Nil(t, plain.Authenticator())

	timed := f.New("https://api.example.com", WithTimeout(time.Second)).(*RestAdapter)
	require.Equal(t, time.Second, timed.Timeout())
	require.Nil(t, timed.Authenticator())

	authed := f.New("https://api.example.com", WithAuthenticator(auth)).(*RestAdapter)
	require.Zero(t, authed.Timeout())
	require.Same(t, auth, authed.Authenticator())

	both := f.New("https://api.example.com", WithTimeout(time.Second), WithAuthenticator(auth)).(*RestAdapter)
	require.Equal(t, time.Second, both.Timeout())
	require.Same(t, auth, both.Authenticator())
}

func TestDefaultFactoryYieldsIndependentAdapters(t *testing.T) {
	t.Parallel()

	f := NewFactory(WithTimeout(time.Second))
	a := f.New("https://api.example.com")
	b := f.New("https://api.example.com")
	require.NotSame(t, a, b)

	// Per-call options win over defaults and do not leak into the factory.
	c := f.New("https://api.example.com", WithTimeout(time.Minute)).(*RestAdapter)
	require.Equal(t, time.Minute, c.Timeout())
	require.Equal(t, time.Second, f.New("https://api.example.com").(*RestAdapter).Timeout())
}
