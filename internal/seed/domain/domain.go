// Package domain holds the rental documents the seeder fabricates and stores.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Dealer owns one or more rental locations.
type Dealer struct {
	DealerID  uuid.UUID   `json:"DealerID"`
	Name      string      `json:"Name"`
	Locations []*Location `json:"Locations"`
}

// Location is the unit stored in the document container. Its partition key
// is "dealerId:locationId".
type Location struct {
	LocationID   uuid.UUID `json:"id"`
	PartitionKey string    `json:"partitionKey"`
	DealerID     uuid.UUID `json:"DealerID"`
	Name         string    `json:"Name"`
	Items        []Item    `json:"Items"`
}

// Item is a rentable bike.
type Item struct {
	ItemID        uuid.UUID `json:"ItemID"`
	Name          string    `json:"Name"`
	Model         string    `json:"Model"`
	Sku           string    `json:"Sku"`
	RateProgramID uuid.UUID `json:"RateProgramId"`
	Categories    []string  `json:"Categories"`
}

// RateProgram is a price list shared by items.
type RateProgram struct {
	RateProgramID uuid.UUID `json:"id"`
	PartitionKey  string    `json:"partitionKey"`
	DealerID      uuid.UUID `json:"DealerID"`
	Rates         []Rate    `json:"Rates"`
}

// Rate is one price in a program. Price is in cents.
type Rate struct {
	RateType RateType `json:"RateType"`
	Price    int64    `json:"Price"`
}

// LocationPartitionKey returns the partition key of a location document.
func LocationPartitionKey(dealerID, locationID uuid.UUID) string {
	return dealerID.String() + ":" + locationID.String()
}

// Assign stamps the owning dealer and partition key on l.
func (l *Location) Assign(dealerID uuid.UUID) {
	l.DealerID = dealerID
	l.PartitionKey = LocationPartitionKey(dealerID, l.LocationID)
}

// Validate checks the document invariants before it is stored.
func (l *Location) Validate() error {
	if l.LocationID == uuid.Nil || l.DealerID == uuid.Nil {
		return fmt.Errorf("location %q: missing id", l.Name)
	}
	if want := LocationPartitionKey(l.DealerID, l.LocationID); l.PartitionKey != want {
		return fmt.Errorf("location %s: partition key %q, want %q", l.LocationID, l.PartitionKey, want)
	}
	return nil
}

// RateProgramPartitionKey returns the partition key of a rate program.
func RateProgramPartitionKey(id uuid.UUID) string {
	return id.String()
}
