package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/eos/internal/models"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat         string `json:"lat"`          // Latitude as string
	Lon         string `json:"lon"`          // Longitude as string
	DisplayName string `json:"display_name"` // Full human-readable place name
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: "https://nominatim.openstreetmap.org/search",
		log:     log,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "Eos-Dawn-Service/1.0 (https://github.com/UnknownOlympus/eos)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   "https://nominatim.openstreetmap.org/search",
		log:       log,
		userAgent: "Eos-Dawn-Service/1.0 (https://github.com/UnknownOlympus/eos)",
	}
}

// Geocode converts a city name to a location record using the Nominatim API.
// It respects Nominatim's usage policy by including a User-Agent header.
//
// Note: Nominatim has a rate limit of 1 request/second for fair use.
// For production use with high volume, consider self-hosting Nominatim or using a commercial provider.
func (np *NominatimProvider) Geocode(ctx context.Context, city string) (*models.LocationRecord, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "city", city)

	// Build request URL with query parameters
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", city)
	query.Set("format", "json")
	query.Set("limit", "1")               // Only need the top result
	query.Set("accept-language", "ru,en") // Birth cities are mostly Russian free text
	reqURL.RawQuery = query.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	// Create HTTP request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", "ru,en")

	// Execute request
	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	// Check HTTP status
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Parse response
	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	// Check if we got any results
	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	np.log.DebugContext(ctx, "Nominatim found result",
		"lat", results[0].Lat, "lon", results[0].Lon, "display_name", results[0].DisplayName)

	// Parse coordinates
	var lat, lon float64
	if _, err = fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	if _, err = fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.LocationRecord{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
