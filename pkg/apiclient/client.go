package apiclient

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

// Kind names a registered client type.
type Kind string

// APIClient is implemented by every resolved client.
type APIClient interface {
	Base() *Client
}

// DealerScopedClient is a client bound to one dealer.
type DealerScopedClient interface {
	APIClient
	DealerID() uuid.UUID
}

// LocationScopedClient is a client bound to one dealer location.
type LocationScopedClient interface {
	DealerScopedClient
	LocationID() uuid.UUID
}

// Client is the state shared by every client kind. Concrete clients embed it.
//
// The adapter handle is bound once, on the first call that needs it, and is
// never swapped afterwards. A client keeps the credentials its handle was
// built with; a newer token reaches clients resolved later.
type Client struct {
	kind     Kind
	scope    Scope
	apiRoot  string
	adapters AdapterFactory

	binds   singleflight.Group
	mu      sync.RWMutex
	adapter restx.Adapter
}

func newClient(kind Kind, scope Scope, apiRoot string, adapters AdapterFactory) *Client {
	return &Client{
		kind:     kind,
		scope:    scope,
		apiRoot:  strings.Trim(apiRoot, "/"),
		adapters: adapters,
	}
}

func (c *Client) Base() *Client   { return c }
func (c *Client) Kind() Kind      { return c.kind }
func (c *Client) Scope() Scope    { return c.scope }
func (c *Client) APIRoot() string { return c.apiRoot }

// ActionURL is the path of action relative to the adapter base URL, prefixed
// with the client scope and API root.
func (c *Client) ActionURL(action string) string {
	action = strings.TrimLeft(action, "/")
	root := c.scope.PathPrefix() + c.apiRoot
	if action == "" {
		return root
	}
	if root == "" {
		return action
	}
	return root + "/" + action
}

// Bound reports whether the adapter has been created.
func (c *Client) Bound() bool {
	return c.bound() != nil
}

// Adapter returns the client adapter, creating it on first use. Concurrent
// first calls share one creation; a failed creation is not remembered. A caller
// whose ctx ends while the creation is in flight returns without waiting.
func (c *Client) Adapter(ctx context.Context) (restx.Adapter, error) {
	if a := c.bound(); a != nil {
		return a, nil
	}

	ch := c.binds.DoChan("adapter", func() (any, error) {
		if a := c.bound(); a != nil {
			return a, nil
		}
		a, err := c.adapters.Adapter(context.WithoutCancel(ctx), c.kind)
		if err != nil {
			return nil, fmt.Errorf("apiclient: %s adapter: %w", c.kind, err)
		}
		c.mu.Lock()
		c.adapter = a
		c.mu.Unlock()
		return a, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(restx.Adapter), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("apiclient: waiting for %s adapter: %w", c.kind, ctx.Err())
	}
}

func (c *Client) bound() restx.Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapter
}

func (c *Client) Get(ctx context.Context, action string) (*restx.Response, error) {
	a, err := c.Adapter(ctx)
	if err != nil {
		return nil, err
	}
	return a.Get(ctx, c.ActionURL(action))
}

func (c *Client) Post(ctx context.Context, action string, body any) (*restx.Response, error) {
	a, err := c.Adapter(ctx)
	if err != nil {
		return nil, err
	}
	return a.Post(ctx, c.ActionURL(action), body)
}

func (c *Client) Put(ctx context.Context, action string, body any) (*restx.Response, error) {
	a, err := c.Adapter(ctx)
	if err != nil {
		return nil, err
	}
	return a.Put(ctx, c.ActionURL(action), body)
}

func (c *Client) Patch(ctx context.Context, action string, body any) (*restx.Response, error) {
	a, err := c.Adapter(ctx)
	if err != nil {
		return nil, err
	}
	return a.Patch(ctx, c.ActionURL(action), body)
}

func (c *Client) Delete(ctx context.Context, action string) (*restx.Response, error) {
	a, err := c.Adapter(ctx)
	if err != nil {
		return nil, err
	}
	return a.Delete(ctx, c.ActionURL(action))
}

// DealerClient is embedded by dealer scoped clients.
type DealerClient struct {
	*Client
}

func (d DealerClient) DealerID() uuid.UUID { return d.Scope().DealerID() }

// LocationClient is embedded by location scoped clients.
type LocationClient struct {
	*Client
}

func (l LocationClient) DealerID() uuid.UUID   { return l.Scope().DealerID() }
func (l LocationClient) LocationID() uuid.UUID { return l.Scope().LocationID() }
