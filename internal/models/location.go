package models

// LocationRecord represents a geocoded place as resolved from a free-text city name.
// Records are immutable once created and are what the geocode cache persists.
type LocationRecord struct {
	Latitude    float64 `json:"latitude"`     // Latitude of the geographical point.
	Longitude   float64 `json:"longitude"`    // Longitude of the geographical point.
	DisplayName string  `json:"display_name"` // Human-readable name returned by the geocoding backend.
}
