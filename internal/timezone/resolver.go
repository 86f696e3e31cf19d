package timezone

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/ringsaturn/tzf"
)

// Finder is the timezone polygon index contract. It matches the tzf finder
// method used here, so tzf implementations satisfy it directly and tests can
// substitute a double. Note the tzf argument order: longitude first.
type Finder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// NewFinder creates the embedded-data tzf finder. The polygon dataset ships
// with the library, so lookups work offline.
func NewFinder() (Finder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone finder: %w", err)
	}

	return finder, nil
}

// Resolver maps coordinates to IANA timezone identifiers. Resolution is a
// deterministic function of the coordinates: exact polygon containment first,
// then nearest-match probing for points that fall into dataset gaps near
// coastlines and borders. It never raises; both strategies failing yields absent.
type Resolver struct {
	finder Finder
	log    *slog.Logger
}

// NewResolver creates a timezone resolver over the given polygon finder.
func NewResolver(finder Finder, log *slog.Logger) *Resolver {
	return &Resolver{finder: finder, log: log}
}

// probeRadii are the ring distances, in degrees, tried by the nearest-match
// fallback, closest first.
var probeRadii = []float64{0.5, 1, 2, 5}

const probesPerRing = 8

// Resolve returns the IANA zone identifier for the coordinates and whether
// one was found.
func (r *Resolver) Resolve(ctx context.Context, lat, lon float64) (string, bool) {
	if r.finder == nil {
		r.log.ErrorContext(ctx, "Timezone finder is not available")
		return "", false
	}

	if name := r.finder.GetTimezoneName(lon, lat); name != "" {
		return name, true
	}

	r.log.DebugContext(ctx, "No exact timezone polygon match, probing for nearest", "lat", lat, "lon", lon)

	for _, radius := range probeRadii {
		// Stretch the longitude offset so rings stay roughly circular on the
		// ground at high latitudes.
		lonScale := 1 / math.Max(math.Cos(lat*math.Pi/180), 0.1)
		for i := 0; i < probesPerRing; i++ {
			angle := 2 * math.Pi * float64(i) / probesPerRing
			probeLat := clampLat(lat + radius*math.Sin(angle))
			probeLon := wrapLon(lon + radius*lonScale*math.Cos(angle))
			if name := r.finder.GetTimezoneName(probeLon, probeLat); name != "" {
				r.log.DebugContext(ctx, "Nearest timezone probe matched",
					"lat", lat, "lon", lon, "radius", radius, "zone", name)
				return name, true
			}
		}
	}

	r.log.ErrorContext(ctx, "Timezone lookup failed for coordinates", "lat", lat, "lon", lon)
	return "", false
}

func clampLat(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
