package apiclient

import (
	"fmt"

	"github.com/google/uuid"
)

// ScopeKind is the closed set of tenant contexts a client can be bound to.
type ScopeKind int

const (
	Unscoped ScopeKind = iota
	DealerScope
	LocationScope
)

func (k ScopeKind) String() string {
	switch k {
	case Unscoped:
		return "unscoped"
	case DealerScope:
		return "dealer"
	case LocationScope:
		return "location"
	default:
		return fmt.Sprintf("ScopeKind(%d)", int(k))
	}
}

// Scope identifies the tenant a client is bound to. The zero value is
// unscoped. Scopes are values and never change after construction.
type Scope struct {
	kind       ScopeKind
	dealerID   uuid.UUID
	locationID uuid.UUID
}

// NoScope returns the unscoped identity.
func NoScope() Scope {
	return Scope{kind: Unscoped}
}

func ForDealer(dealerID uuid.UUID) Scope {
	return Scope{kind: DealerScope, dealerID: dealerID}
}

func ForLocation(dealerID, locationID uuid.UUID) Scope {
	return Scope{kind: LocationScope, dealerID: dealerID, locationID: locationID}
}

func (s Scope) Kind() ScopeKind { return s.kind }

// DealerID is uuid.Nil for unscoped identities.
func (s Scope) DealerID() uuid.UUID { return s.dealerID }

// LocationID is uuid.Nil unless the scope is a location.
func (s Scope) LocationID() uuid.UUID { return s.locationID }

// Validate rejects scoped identities carrying nil ids.
func (s Scope) Validate() error {
	switch s.kind {
	case Unscoped:
		return nil
	case DealerScope:
		if s.dealerID == uuid.Nil {
			return fmt.Errorf("%w: dealer id is empty", ErrInvalidScope)
		}
		return nil
	case LocationScope:
		if s.dealerID == uuid.Nil || s.locationID == uuid.Nil {
			return fmt.Errorf("%w: dealer and location ids are required", ErrInvalidScope)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidScope, s.kind)
	}
}

// PathPrefix is the URL prefix every call made under this scope carries.
func (s Scope) PathPrefix() string {
	switch s.kind {
	case DealerScope:
		return "dealers/" + s.dealerID.String() + "/"
	case LocationScope:
		return "dealers/" + s.dealerID.String() + "/locations/" + s.locationID.String() + "/"
	default:
		return ""
	}
}

func (s Scope) String() string {
	switch s.kind {
	case DealerScope:
		return "dealer:" + s.dealerID.String()
	case LocationScope:
		return "location:" + s.dealerID.String() + ":" + s.locationID.String()
	default:
		return s.kind.String()
	}
}
