package platform

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/dealerseed/pkg/apiclient"
	"github.com/aussiebroadwan/dealerseed/pkg/restx"
)

// Platform resolves typed platform clients.
type Platform struct {
	clients *apiclient.Factory
}

// New registers the platform kinds and backs them with authenticated adapters
// for cfg.APIURL. tokens is usually an *authx.TokenSource built for
// cfg.IdentityURL and shared with everything else in the process.
func New(cfg Config, tokens Tokens, logger *slog.Logger) (*Platform, error) {
	reg := apiclient.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}

	defaults := []restx.Option{restx.WithLogger(logger)}
	if cfg.Timeout > 0 {
		defaults = append(defaults, restx.WithTimeout(cfg.Timeout))
	}
	if cfg.RPS > 0 {
		burst := max(1, int(cfg.RPS))
		defaults = append(defaults, restx.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.RPS), burst)))
	}

	adapters := NewAuthenticatedAdapters(cfg.APIURL, tokens, restx.NewFactory(defaults...))
	return &Platform{clients: apiclient.NewFactory(reg, adapters)}, nil
}

// Clients exposes the underlying factory for untyped resolution.
func (p *Platform) Clients() *apiclient.Factory { return p.clients }

func (p *Platform) Dealers() (*DealersClient, error) {
	return apiclient.As[*DealersClient](p.clients.Resolve(KindDealers))
}

func (p *Platform) Locations(dealerID uuid.UUID) (*LocationsClient, error) {
	return apiclient.As[*LocationsClient](p.clients.ResolveDealer(KindLocations, dealerID))
}

func (p *Platform) Items(dealerID, locationID uuid.UUID) (*ItemsClient, error) {
	return apiclient.As[*ItemsClient](p.clients.ResolveLocation(KindItems, dealerID, locationID))
}

func (p *Platform) RatePrograms(dealerID uuid.UUID) (*RateProgramsClient, error) {
	return apiclient.As[*RateProgramsClient](p.clients.ResolveDealer(KindRatePrograms, dealerID))
}
