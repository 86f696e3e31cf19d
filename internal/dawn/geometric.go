package dawn

import (
	"log/slog"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// GeometricStrategy computes civil dawn with the closed-form hour-angle
// equation for a −6° solar depression. No discrete-event search is needed;
// accuracy is within a few minutes of the ephemeris path under non-polar
// conditions.
type GeometricStrategy struct {
	log *slog.Logger
}

// NewGeometricStrategy creates the lower-precision fallback strategy.
func NewGeometricStrategy(log *slog.Logger) *GeometricStrategy {
	return &GeometricStrategy{log: log}
}

func (s *GeometricStrategy) Name() string { return "geometric" }

// CivilDawn evaluates the dawn equation for the UTC day matching the
// requested local date. Far from the Greenwich meridian the UTC and local
// calendar days diverge, so the neighbouring UTC days are tried until the
// event lands on the requested local date.
func (s *GeometricStrategy) CivilDawn(
	year int,
	month time.Month,
	day int,
	lat, lon float64,
	loc *time.Location,
) (time.Time, error) {
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	for _, offset := range []int{0, -1, 1} {
		d := base.AddDate(0, 0, offset)

		morning, _ := sunrise.TimeOfElevation(lat, lon, civilDawnAltitude, d.Year(), d.Month(), d.Day())
		if morning.IsZero() {
			// Sun never crosses the dawn altitude on this UTC day.
			continue
		}

		local := morning.In(loc)
		if local.Year() == year && local.Month() == month && local.Day() == day {
			return local, nil
		}

		s.log.Debug("Geometric dawn landed outside requested local date, trying neighbour day",
			"requested", base.Format(time.DateOnly), "got", local.Format(time.RFC3339))
	}

	return time.Time{}, ErrNoDawn
}
