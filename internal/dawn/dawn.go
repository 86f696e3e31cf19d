package dawn

import (
	"errors"
	"log/slog"
	"time"
)

// civilDawnAltitude is the altitude of the sun's center at civil dawn, in
// degrees below the geometric horizon.
const civilDawnAltitude = -6.0

// ErrNoDawn is returned when no ascending crossing of the civil dawn altitude
// exists on the requested local calendar date (polar summer/winter), or the
// search exhausted its window without finding one.
var ErrNoDawn = errors.New("no civil dawn event found")

// Strategy computes the civil dawn instant for a local calendar date at the
// given coordinates. Implementations are pure functions of their inputs and
// return the instant localized to loc.
type Strategy interface {
	Name() string
	CivilDawn(year int, month time.Month, day int, lat, lon float64, loc *time.Location) (time.Time, error)
}

// Calculator is the unified dawn entry point: it prefers the primary strategy
// and transparently substitutes the fallback on any failure. The path that
// produced the result is reported for diagnostics; the contract is the same
// for both.
type Calculator struct {
	log      *slog.Logger
	primary  Strategy
	fallback Strategy
}

// NewCalculator creates a calculator over the given strategies. Either may be
// nil when unavailable.
func NewCalculator(log *slog.Logger, primary, fallback Strategy) *Calculator {
	return &Calculator{log: log, primary: primary, fallback: fallback}
}

// CivilDawn returns the civil dawn instant for the date and location, the
// name of the strategy that produced it, and an error if every available
// strategy failed.
func (c *Calculator) CivilDawn(
	year int,
	month time.Month,
	day int,
	lat, lon float64,
	loc *time.Location,
) (time.Time, string, error) {
	if c.primary != nil {
		instant, err := c.primary.CivilDawn(year, month, day, lat, lon, loc)
		if err == nil {
			return instant, c.primary.Name(), nil
		}
		c.log.Warn("Primary dawn strategy failed, substituting fallback",
			"strategy", c.primary.Name(), "error", err)
	}

	if c.fallback == nil {
		return time.Time{}, "", ErrNoDawn
	}

	instant, err := c.fallback.CivilDawn(year, month, day, lat, lon, loc)
	if err != nil {
		return time.Time{}, c.fallback.Name(), err
	}

	return instant, c.fallback.Name(), nil
}
