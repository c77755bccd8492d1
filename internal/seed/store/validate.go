package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
)

// ValidateLocation is shared by drivers before a location is written.
func ValidateLocation(l domain.Location) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ValidateRateProgram is shared by drivers before a rate program is written.
func ValidateRateProgram(p domain.RateProgram) error {
	if p.RateProgramID == uuid.Nil || p.DealerID == uuid.Nil {
		return fmt.Errorf("%w: rate program without id or dealer", ErrInvalid)
	}
	if p.PartitionKey != domain.RateProgramPartitionKey(p.RateProgramID) {
		return fmt.Errorf("%w: rate program %s has partition key %q", ErrInvalid, p.RateProgramID, p.PartitionKey)
	}
	return nil
}
