package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

const (
	kindWidgets   Kind = "widgets"
	kindShelves   Kind = "shelves"
	kindBins      Kind = "bins"
	kindMissing   Kind = "missing"
	kindMisshapen Kind = "misshapen"
)

type widgetsClient struct{ *Client }

type shelvesClient struct{ DealerClient }

type binsClient struct{ LocationClient }

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	reg.MustRegister(kindWidgets, Recipe{
		Scope:   Unscoped,
		APIRoot: "widgets",
		New:     func(c *Client) APIClient { return &widgetsClient{c} },
	})
	reg.MustRegister(kindShelves, Recipe{
		Scope:   DealerScope,
		APIRoot: "shelves",
		New:     func(c *Client) APIClient { return &shelvesClient{DealerClient{c}} },
	})
	reg.MustRegister(kindBins, Recipe{
		Scope:   LocationScope,
		APIRoot: "/bins/",
		New:     func(c *Client) APIClient { return &binsClient{LocationClient{c}} },
	})
	// Registered for dealers but builds a client without DealerID.
	reg.MustRegister(kindMisshapen, Recipe{
		Scope:   DealerScope,
		APIRoot: "misshapen",
		New:     func(c *Client) APIClient { return &widgetsClient{c} },
	})
	return reg
}

// countingAdapters records every adapter creation.
type countingAdapters struct {
	calls   atomic.Int32
	baseURL string
	err     error
}

func (c *countingAdapters) Adapter(_ context.Context, kind Kind) (restx.Adapter, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return restx.NewAdapter(c.baseURL, restx.WithHeader("X-Client-Kind", string(kind))), nil
}

// recordingServer echoes the request path and remembers the headers it saw.
func recordingServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()

	var seen sync.Map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.URL.Path, r.Header.Get("X-Client-Kind"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}
