package platform

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
	"github.com/aussiebroadwan/dealerseed/pkg/apiclient"
)

// Client kinds served by the platform API.
const (
	KindDealers      apiclient.Kind = "dealers"
	KindLocations    apiclient.Kind = "locations"
	KindItems        apiclient.Kind = "items"
	KindRatePrograms apiclient.Kind = "rate-programs"
)

// Register adds every platform kind to reg.
func Register(reg *apiclient.Registry) error {
	recipes := map[apiclient.Kind]apiclient.Recipe{
		KindDealers: {
			Scope:   apiclient.Unscoped,
			APIRoot: "dealers",
			New:     func(c *apiclient.Client) apiclient.APIClient { return &DealersClient{c} },
		},
		KindLocations: {
			Scope:   apiclient.DealerScope,
			APIRoot: "locations",
			New: func(c *apiclient.Client) apiclient.APIClient {
				return &LocationsClient{apiclient.DealerClient{Client: c}}
			},
		},
		KindItems: {
			Scope:   apiclient.LocationScope,
			APIRoot: "items",
			New: func(c *apiclient.Client) apiclient.APIClient {
				return &ItemsClient{apiclient.LocationClient{Client: c}}
			},
		},
		KindRatePrograms: {
			Scope:   apiclient.DealerScope,
			APIRoot: "rate-programs",
			New: func(c *apiclient.Client) apiclient.APIClient {
				return &RateProgramsClient{apiclient.DealerClient{Client: c}}
			},
		},
	}
	for kind, recipe := range recipes {
		if err := reg.Register(kind, recipe); err != nil {
			return err
		}
	}
	return nil
}

// DealersClient reads dealers.
type DealersClient struct {
	*apiclient.Client
}

func (c *DealersClient) List(ctx context.Context) ([]domain.Dealer, error) {
	resp, err := c.Client.Get(ctx, "")
	if err != nil {
		return nil, err
	}
	var out []domain.Dealer
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DealersClient) Get(ctx context.Context, dealerID uuid.UUID) (domain.Dealer, error) {
	resp, err := c.Client.Get(ctx, dealerID.String())
	if err != nil {
		return domain.Dealer{}, err
	}
	var out domain.Dealer
	if err := resp.Decode(&out); err != nil {
		return domain.Dealer{}, err
	}
	return out, nil
}

// LocationsClient manages the locations of one dealer.
type LocationsClient struct {
	apiclient.DealerClient
}

func (c *LocationsClient) List(ctx context.Context) ([]domain.Location, error) {
	resp, err := c.Client.Get(ctx, "")
	if err != nil {
		return nil, err
	}
	var out []domain.Location
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Put creates or replaces l. It refuses locations of another dealer.
func (c *LocationsClient) Put(ctx context.Context, l domain.Location) error {
	if l.DealerID != c.DealerID() {
		return fmt.Errorf("%w: location %s belongs to dealer %s, client is bound to %s",
			apiclient.ErrScopeMismatch, l.LocationID, l.DealerID, c.DealerID())
	}
	_, err := c.Client.Put(ctx, l.LocationID.String(), l)
	return err
}

// ItemsClient manages the items of one location.
type ItemsClient struct {
	apiclient.LocationClient
}

func (c *ItemsClient) List(ctx context.Context) ([]domain.Item, error) {
	resp, err := c.Client.Get(ctx, "")
	if err != nil {
		return nil, err
	}
	var out []domain.Item
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ItemsClient) Put(ctx context.Context, item domain.Item) error {
	_, err := c.Client.Put(ctx, item.ItemID.String(), item)
	return err
}

// RateProgramsClient manages the rate programs of one dealer.
type RateProgramsClient struct {
	apiclient.DealerClient
}

// Put creates or replaces p. It refuses programs of another dealer.
func (c *RateProgramsClient) Put(ctx context.Context, p domain.RateProgram) error {
	if p.DealerID != c.DealerID() {
		return fmt.Errorf("%w: rate program %s belongs to dealer %s, client is bound to %s",
			apiclient.ErrScopeMismatch, p.RateProgramID, p.DealerID, c.DealerID())
	}
	_, err := c.Client.Put(ctx, p.RateProgramID.String(), p)
	return err
}
