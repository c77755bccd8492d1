/*
Package restx is a small REST adapter layer: an Adapter bound to one base URL
that speaks the HTTP verbs, a Factory that builds adapters, and an
Authenticator hook that decorates outgoing requests.

# Adapters

An Adapter is configured once and never changes afterwards. Everything that
varies between adapters (timeout, authenticator, rate limiter, extra headers)
is passed as an Option at construction:

	factory := restx.NewFactory(restx.WithLogger(logger))

	anon := factory.New("https://id.example.com/token")
	timed := factory.New(baseURL, restx.WithTimeout(5*time.Second))
	authed := factory.New(baseURL, restx.WithAuthenticator(restx.NewTokenAuthenticator(tok, "")))
	both := factory.New(baseURL, restx.WithTimeout(5*time.Second), restx.WithAuthenticator(auth))

A new authentication state means a new adapter. Adapters are not pooled or
cached by the factory; callers that want reuse keep the handle themselves.

# Errors

Every failure talking to the remote side matches ErrTransport:

  - network errors, timeouts and cancellation are wrapped together with the cause
  - non-2xx answers are returned as *StatusError, which carries the status and body

Nothing is retried here.
*/
package restx
