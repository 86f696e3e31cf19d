package repository

import (
	"context"

	"github.com/UnknownOlympus/eos/internal/models"
)

// Interface is the geocode cache contract. Caching is an optimization, not a
// correctness requirement, so both operations absorb storage failures:
// Lookup degrades to a miss and Store logs and drops the record. Keys are the
// trimmed, case-folded city strings produced by the geocoding resolver.
type Interface interface {
	// Lookup returns the cached record for key and whether it was present.
	Lookup(ctx context.Context, key string) (models.LocationRecord, bool)
	// Store persists the record for key, best-effort.
	Store(ctx context.Context, key string, record models.LocationRecord)
}
