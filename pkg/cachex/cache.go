// Package cachex holds the keyed, expiring cache that shared credentials live
// in. Entries are replaced whole; there is no partial update.
package cachex

import (
	"context"
	"time"
)

// Entry is one cached value with its absolute expiry.
type Entry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the entry may still be served at now.
func (e Entry) Valid(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Cache is a keyed store of expiring entries. Get never returns an entry that
// is expired at the time of the call.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error

	// DeleteIf removes key only while it still holds value, as one atomic
	// step. It reports whether an entry was removed.
	DeleteIf(ctx context.Context, key, value string) (bool, error)
}
