package models

import "time"

// ErrorCode identifies a failure state of the evaluation pipeline.
// Codes are returned as data; nothing is thrown across the public boundary.
type ErrorCode string

const (
	// ErrCodeInvalidInput means the date or time string was malformed.
	ErrCodeInvalidInput ErrorCode = "invalid_input"
	// ErrCodeGeocodeFailed means the city text could not be resolved to coordinates.
	ErrCodeGeocodeFailed ErrorCode = "geocode_failed"
	// ErrCodeTimezoneNotFound means coordinates resolved but the timezone lookup failed.
	ErrCodeTimezoneNotFound ErrorCode = "tz_not_found"
)

// BirthDawnReport is the aggregate result of one evaluation request.
// It is constructed once, never mutated, and serializes to the flat field map
// consumed by the presentation layer. WasDawn is tri-state: nil means the
// verdict is unknown (dawn computation inconclusive or city omitted).
type BirthDawnReport struct {
	City        string    `json:"city"`
	DisplayName string    `json:"display_name,omitempty"`
	Latitude    *float64  `json:"lat,omitempty"`
	Longitude   *float64  `json:"lon,omitempty"`
	Timezone    string    `json:"tz,omitempty"`
	BirthDT     string    `json:"birth_dt,omitempty"` // RFC 3339, localized to Timezone.
	DawnDT      string    `json:"dawn_dt,omitempty"`  // RFC 3339, absent if dawn was not computed.
	WasDawn     *bool     `json:"was_dawn"`
	DawnPath    string    `json:"dawn_path,omitempty"` // Which strategy produced the dawn instant.
	Error       ErrorCode `json:"error,omitempty"`

	// Typed instants for programmatic consumers; the string fields above are
	// what downstream rendering uses.
	Birth time.Time `json:"-"`
	Dawn  time.Time `json:"-"`
}
