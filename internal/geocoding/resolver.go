package geocoding

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/eos/internal/metrics"
	"github.com/UnknownOlympus/eos/internal/models"
	"github.com/UnknownOlympus/eos/internal/repository"
)

// sentinelValues are inputs meaning "no city provided". They resolve to absent
// without consulting the cache or any backend.
var sentinelValues = map[string]struct{}{
	"":           {},
	"unknown":    {},
	"неизвестно": {},
	"n/a":        {},
}

// NormalizeKey produces the cache key for a free-text city name:
// trimmed and case-folded.
func NormalizeKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// IsOmitted reports whether the city input is a sentinel for "no location provided".
func IsOmitted(city string) bool {
	_, ok := sentinelValues[NormalizeKey(city)]
	return ok
}

// Resolver resolves free-text city names to location records, consulting and
// populating the geocode cache around the live provider. Failures never
// propagate: a timeout, not-found or backend error degrades to absent.
type Resolver struct {
	log          *slog.Logger
	cache        repository.Interface
	provider     Provider
	providerName string
	metrics      *metrics.Metrics
	timeout      time.Duration
}

// NewResolver creates a cache-aware geocoding resolver. The timeout bounds a
// single live provider call.
func NewResolver(
	log *slog.Logger,
	cache repository.Interface,
	provider Provider,
	providerName string,
	appMetrics *metrics.Metrics,
	timeout time.Duration,
) *Resolver {
	return &Resolver{
		log:          log,
		cache:        cache,
		provider:     provider,
		providerName: providerName,
		metrics:      appMetrics,
		timeout:      timeout,
	}
}

// Resolve returns the location record for the given city name and whether
// resolution succeeded. A cache hit short-circuits network resolution; a
// successful live resolution writes through to the cache exactly once.
func (r *Resolver) Resolve(ctx context.Context, city string) (*models.LocationRecord, bool) {
	if IsOmitted(city) {
		r.log.DebugContext(ctx, "City input is a sentinel, skipping resolution", "city", city)
		return nil, false
	}

	key := NormalizeKey(city)

	if record, ok := r.cache.Lookup(ctx, key); ok {
		r.log.DebugContext(ctx, "Geocode cache hit", "key", key, "display_name", record.DisplayName)
		r.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return &record, true
	}
	r.metrics.CacheLookups.WithLabelValues("miss").Inc()

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	startTime := time.Now()
	record, err := r.provider.Geocode(callCtx, city)
	r.metrics.RequestSeconds.WithLabelValues(r.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		r.log.ErrorContext(ctx, "Failed to geocode city", "city", city, "error", err)
		r.metrics.APIErrors.Inc()
		return nil, false
	}

	r.cache.Store(ctx, key, *record)
	r.log.DebugContext(ctx, "Geocoded city",
		"city", city, "lat", record.Latitude, "lon", record.Longitude, "display_name", record.DisplayName)

	return record, true
}
