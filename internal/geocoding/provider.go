package geocoding

import (
	"context"

	"github.com/UnknownOlympus/eos/internal/models"
)

// Provider is an interface that defines a method for geocoding a place name.
// The Geocode method takes a context and a free-text city string as input,
// and returns the resolved location record and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, city string) (*models.LocationRecord, error)
}
