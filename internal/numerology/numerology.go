package numerology

import (
	"fmt"
	"time"
)

// planetNumbers maps the weekday a birthday falls on to its ruling planet
// number in the vedic tradition: Sun 1, Moon 2, Jupiter 3, Mercury 5,
// Venus 6, Saturn 8, Mars 9.
var planetNumbers = map[time.Weekday]int{
	time.Sunday:    1,
	time.Monday:    2,
	time.Tuesday:   9,
	time.Wednesday: 5,
	time.Thursday:  3,
	time.Friday:    6,
	time.Saturday:  8,
}

// Reduce collapses a non-negative number to a single digit by repeatedly
// summing its decimal digits. Zero stays zero.
func Reduce(n int) int {
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}

	return n
}

// CoreNumbers are the three birth-date numbers: soul from the day digits,
// destiny from all eight date digits, purpose from the day and month digits.
type CoreNumbers struct {
	Soul    int `json:"soul"`
	Destiny int `json:"destiny"`
	Purpose int `json:"purpose"`
}

// Calculate derives the core numbers from a birth date. Each component sums
// the zero-padded decimal digits of its slice of DDMMYYYY, then reduces.
func Calculate(birth time.Time) CoreNumbers {
	day, month, year := birth.Day(), int(birth.Month()), birth.Year()

	dayDigits := day/10 + day%10
	monthDigits := month/10 + month%10
	yearDigits := 0
	for y := year; y > 0; y /= 10 {
		yearDigits += y % 10
	}

	return CoreNumbers{
		Soul:    Reduce(dayDigits),
		Destiny: Reduce(dayDigits + monthDigits + yearDigits),
		Purpose: Reduce(dayDigits + monthDigits),
	}
}

// YearForecast is the full breakdown of a vedic year calculation, kept
// step by step so callers can render the working, not just the result.
type YearForecast struct {
	Day          int          `json:"day"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	YearLastTwo  int          `json:"year_last_two"`
	Weekday      time.Weekday `json:"-"`
	WeekdayName  string       `json:"weekday"`
	PlanetNumber int          `json:"planet_number"`
	RawSum       int          `json:"raw_sum"`
	Reduced      int          `json:"reduced"`
}

// VedicYear computes the yearly forecast number for a birthday projected
// into a target year: day + month + last two digits of the year + the planet
// number of the weekday the birthday falls on in that year, reduced to a
// single digit. The date must be valid in the target year.
func VedicYear(day int, month time.Month, targetYear int) (YearForecast, error) {
	date := time.Date(targetYear, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month || date.Year() != targetYear {
		return YearForecast{}, fmt.Errorf("invalid date %02d.%02d.%04d", day, month, targetYear)
	}

	weekday := date.Weekday()
	planet := planetNumbers[weekday]
	lastTwo := targetYear % 100

	raw := day + int(month) + lastTwo + planet

	return YearForecast{
		Day:          day,
		Month:        int(month),
		Year:         targetYear,
		YearLastTwo:  lastTwo,
		Weekday:      weekday,
		WeekdayName:  weekday.String(),
		PlanetNumber: planet,
		RawSum:       raw,
		Reduced:      Reduce(raw),
	}, nil
}
