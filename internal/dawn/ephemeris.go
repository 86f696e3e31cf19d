package dawn

import (
	"log/slog"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// searchStep is the sampling stride of the discrete-event search. Civil
// twilight altitude changes by well under a degree per stride at any
// latitude where dawn occurs, so a crossing cannot be stepped over.
const searchStep = 5 * time.Minute

// EphemerisStrategy finds civil dawn by sampling the sun's apparent altitude
// across the UTC span of the local calendar day and bisecting the ascending
// crossing of the civil dawn altitude. Solar coordinates come from the Meeus
// apparent-position series; when a VSOP-87 ephemeris directory is configured
// and loads, the full planetary theory is used instead.
type EphemerisStrategy struct {
	log   *slog.Logger
	earth *planetposition.V87Planet // nil means the built-in solar series
}

// NewEphemerisStrategy creates the high-precision dawn strategy. The
// ephemeris directory is optional and fallible: an empty or unreadable
// directory keeps the built-in solar series, which is accurate to well under
// a minute of dawn time.
func NewEphemerisStrategy(log *slog.Logger, ephemerisDir string) *EphemerisStrategy {
	strategy := &EphemerisStrategy{log: log}

	if ephemerisDir == "" {
		log.Debug("No ephemeris directory configured, using built-in solar series")
		return strategy
	}

	earth, err := planetposition.LoadPlanetPath(planetposition.Earth, ephemerisDir)
	if err != nil {
		log.Warn("Failed to load VSOP-87 ephemeris, using built-in solar series",
			"dir", ephemerisDir, "error", err)
		return strategy
	}

	log.Info("Loaded VSOP-87 ephemeris", "dir", ephemerisDir)
	strategy.earth = earth

	return strategy
}

func (s *EphemerisStrategy) Name() string { return "ephemeris" }

// CivilDawn searches the local calendar day [00:00, 24:00) for the ascending
// crossing. Both boundaries go through the location's zone rules, so DST
// transitions shorten or stretch the searched UTC interval correctly. If the
// day interval holds no event, the window widens one day each side and events
// are filtered to the requested local calendar date.
func (s *EphemerisStrategy) CivilDawn(
	year int,
	month time.Month,
	day int,
	lat, lon float64,
	loc *time.Location,
) (time.Time, error) {
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	if crossings := s.crossings(dayStart, dayEnd, lat, lon); len(crossings) > 0 {
		return crossings[0].In(loc), nil
	}

	for _, instant := range s.crossings(dayStart.AddDate(0, 0, -1), dayEnd.AddDate(0, 0, 1), lat, lon) {
		local := instant.In(loc)
		if local.Year() == year && local.Month() == month && local.Day() == day {
			return local, nil
		}
	}

	return time.Time{}, ErrNoDawn
}

// crossings samples the altitude function over [start, end] and returns every
// ascending crossing of the civil dawn altitude, bisected to sub-second
// precision. The stride bounds the iteration count, so the search always
// terminates.
func (s *EphemerisStrategy) crossings(start, end time.Time, lat, lon float64) []time.Time {
	var found []time.Time

	prev := start
	prevAlt := s.altitude(start, lat, lon)
	for cur := start.Add(searchStep); !cur.After(end); cur = cur.Add(searchStep) {
		alt := s.altitude(cur, lat, lon)
		if prevAlt < civilDawnAltitude && alt >= civilDawnAltitude {
			found = append(found, s.bisect(prev, cur, lat, lon))
		}
		prev, prevAlt = cur, alt
	}

	return found
}

// bisect narrows an ascending crossing bracketed by [lo, hi] below one second.
func (s *EphemerisStrategy) bisect(lo, hi time.Time, lat, lon float64) time.Time {
	for i := 0; i < 40 && hi.Sub(lo) > time.Second; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		if s.altitude(mid, lat, lon) < civilDawnAltitude {
			lo = mid
		} else {
			hi = mid
		}
	}

	return hi
}

// altitude returns the apparent altitude of the sun's center, in degrees, at
// the observer's position. Refraction is not applied: twilight definitions
// are geometric.
func (s *EphemerisStrategy) altitude(t time.Time, lat, lon float64) float64 {
	jd := julian.TimeToJD(t.UTC())

	var ra unit.RA
	var dec unit.Angle
	if s.earth != nil {
		ra, dec, _ = solar.ApparentEquatorialVSOP87(s.earth, jd)
	} else {
		ra, dec = solar.ApparentEquatorial(jd)
	}

	st := sidereal.Apparent(jd)

	// Meeus counts geographic longitude positive westward of Greenwich.
	_, alt := coord.EqToHz(ra, dec, unit.AngleFromDeg(lat), unit.AngleFromDeg(-lon), st)

	return alt.Deg()
}
