package platform

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/dealerseed/pkg/confx"
)

// Configuration keys read from a confx.Provider.
const (
	KeyPlatformAPIURL = "PlatformApiUrl"
	KeyBaseAddressURL = "BaseAddressUrl"
)

// Config locates the platform API and its identity endpoint.
type Config struct {
	APIURL      string
	IdentityURL string

	// Timeout bounds every API and identity call. Zero means no timeout.
	Timeout time.Duration
	// RPS limits outgoing API calls per second across all clients. Zero
	// disables the limit.
	RPS float64
}

// ConfigFrom reads both URLs from p.
func ConfigFrom(p confx.Provider) (Config, error) {
	api, err := p.Value(KeyPlatformAPIURL)
	if err != nil {
		return Config{}, fmt.Errorf("platform: %w", err)
	}
	identity, err := p.Value(KeyBaseAddressURL)
	if err != nil {
		return Config{}, fmt.Errorf("platform: %w", err)
	}
	return Config{APIURL: api, IdentityURL: identity}, nil
}
