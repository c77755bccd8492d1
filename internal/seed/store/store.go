package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrInvalid  = errors.New("store: invalid document")
)

// Store is the document container the seeder writes to. Concrete drivers
// (sqlite, dynamo) implement it. Puts are upserts keyed by the document
// partition key and id, so a rerun overwrites rather than duplicates.
type Store interface {
	// EnsureContainer creates the container (table, schema) if it does not
	// exist yet. It is safe to call repeatedly.
	EnsureContainer(ctx context.Context) error

	// PutLocation stores a location with its items.
	PutLocation(ctx context.Context, l domain.Location) error

	// PutRateProgram stores a rate program.
	PutRateProgram(ctx context.Context, p domain.RateProgram) error

	GetLocation(ctx context.Context, dealerID, locationID uuid.UUID) (domain.Location, error)

	// ListLocations returns every location of a dealer, ordered by id.
	ListLocations(ctx context.Context, dealerID uuid.UUID) ([]domain.Location, error)

	GetRateProgram(ctx context.Context, dealerID, id uuid.UUID) (domain.RateProgram, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
