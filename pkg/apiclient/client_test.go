package apiclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

func TestActionURL(t *testing.T) {
	t.Parallel()

	dealerID := uuid.MustParse("6f1f5c1e-3d55-4a57-9d6f-6e2a61f0b001")
	locationID := uuid.MustParse("0b9c0d7a-5f4e-4f43-8a53-2b8c3f6d9002")

	tests := []struct {
		name   string
		client *Client
		action string
		want   string
	}{
		{"unscoped", newClient(kindWidgets, NoScope(), "widgets", nil), "list", "widgets/list"},
		{"unscoped empty action", newClient(kindWidgets, NoScope(), "widgets", nil), "", "widgets"},
		{"leading slash", newClient(kindWidgets, NoScope(), "widgets", nil), "/42", "widgets/42"},
		{"no root", newClient(kindWidgets, NoScope(), "", nil), "ping", "ping"},
		{
			"dealer",
			newClient(kindShelves, ForDealer(dealerID), "shelves", nil), "",
			"dealers/6f1f5c1e-3d55-4a57-9d6f-6e2a61f0b001/shelves",
		},
		{
			"location",
			newClient(kindBins, ForLocation(dealerID, locationID), "/bins/", nil), "top",
			"dealers/6f1f5c1e-3d55-4a57-9d6f-6e2a61f0b001/locations/0b9c0d7a-5f4e-4f43-8a53-2b8c3f6d9002/bins/top",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.client.ActionURL(tt.action))
		})
	}
}

func TestClientBindsAdapterOnce(t *testing.T) {
	t.Parallel()

	srv, seen := recordingServer(t)
	adapters := &countingAdapters{baseURL: srv.URL}
	f := NewFactory(testRegistry(t), adapters)

	dealerID := uuid.New()
	c, err := f.ResolveDealer(kindShelves, dealerID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.Base().Get(context.Background(), "")
			if assert.NoError(t, err) {
				assert.Equal(t, 200, resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, adapters.calls.Load())
	require.True(t, c.Base().Bound())

	kind, ok := seen.Load("/dealers/" + dealerID.String() + "/shelves")
	require.True(t, ok)
	require.Equal(t, string(kindShelves), kind)
}

func TestClientAdapterIsStable(t *testing.T) {
	t.Parallel()

	srv, _ := recordingServer(t)
	f := NewFactory(testRegistry(t), &countingAdapters{baseURL: srv.URL})

	c, err := f.Resolve(kindWidgets)
	require.NoError(t, err)

	a1, err := c.Base().Adapter(context.Background())
	require.NoError(t, err)
	a2, err := c.Base().Adapter(context.Background())
	require.NoError(t, err)
	require.Same(t, a1, a2)
}

func TestClientVerbs(t *testing.T) {
	t.Parallel()

	srv, seen := recordingServer(t)
	f := NewFactory(testRegistry(t), &countingAdapters{baseURL: srv.URL})

	dealerID, locationID := uuid.New(), uuid.New()
	c, err := f.ResolveLocation(kindBins, dealerID, locationID)
	require.NoError(t, err)

	ctx := context.Background()
	base := c.Base()
	prefix := "/dealers/" + dealerID.String() + "/locations/" + locationID.String() + "/bins/"

	var resp struct {
		Path string `json:"path"`
	}

	r, err := base.Post(ctx, "a", map[string]int{"n": 1})
	require.NoError(t, err)
	require.NoError(t, r.Decode(&resp))
	require.Equal(t, prefix+"a", resp.Path)

	_, err = base.Put(ctx, "b", map[string]int{"n": 2})
	require.NoError(t, err)
	_, err = base.Patch(ctx, "c", map[string]int{"n": 3})
	require.NoError(t, err)
	_, err = base.Delete(ctx, "d")
	require.NoError(t, err)

	for _, p := range []string{"a", "b", "c", "d"} {
		_, ok := seen.Load(prefix + p)
		require.True(t, ok, p)
	}
}

func TestClientAdapterFailureIsRetried(t *testing.T) {
	t.Parallel()

	boom := errors.New("identity down")
	adapters := &countingAdapters{err: boom}
	f := NewFactory(testRegistry(t), adapters)

	c, err := f.Resolve(kindWidgets)
	require.NoError(t, err)

	_, err = c.Base().Get(context.Background(), "")
	require.ErrorIs(t, err, boom)
	require.False(t, c.Base().Bound())

	_, err = c.Base().Get(context.Background(), "")
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 2, adapters.calls.Load())
}

func TestClientAdapterWaitHonoursContext(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	adapters := AdapterFactoryFunc(func(context.Context, Kind) (restx.Adapter, error) {
		calls.Add(1)
		close(entered)
		<-release
		return restx.NewAdapter("http://example.invalid"), nil
	})

	c, err := NewFactory(testRegistry(t), adapters).Resolve(kindWidgets)
	require.NoError(t, err)

	first := make(chan error, 1)
	go func() {
		_, err := c.Base().Adapter(context.Background())
		first <- err
	}()
	<-entered

	// A second caller with a dead context must not queue behind the creation.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	waited := make(chan error, 1)
	go func() {
		_, err := c.Base().Adapter(ctx)
		waited <- err
	}()
	select {
	case err := <-waited:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller blocked on adapter creation")
	}
	require.False(t, c.Base().Bound())

	close(release)
	require.NoError(t, <-first)
	require.True(t, c.Base().Bound())
	require.EqualValues(t, 1, calls.Load())
}
