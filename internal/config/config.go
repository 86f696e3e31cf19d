package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Cache backend selectors.
const (
	CacheBackendFile     = "file"
	CacheBackendPostgres = "postgres"
)

// Config holds the configuration settings for the dawn evaluation service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring/API server.
// - ProviderType: The type of geocoding provider to use (google, nominatim).
// - APIKey: The API key for accessing external services (required for Google).
// - Workers: The number of concurrent workers for batch evaluation.
// - GeocodeTimeout: Upper bound on a single live geocoding call.
// - CacheBackend: Which geocode cache implementation to use (file, postgres).
// - CachePath: Path of the JSON cache file (file backend).
// - EphemerisDir: Directory holding VSOP-87 data files; empty keeps the built-in solar series.
// - Database: Configuration settings for the PostgreSQL cache backend.
type Config struct {
	Env            string         `yaml:"env"`
	Port           int            `yaml:"eos.port"`
	ProviderType   string         `yaml:"provider.type"`
	APIKey         string         `yaml:"provider.api_key"`
	Workers        int            `yaml:"eos.workers"`
	GeocodeTimeout time.Duration  `yaml:"geocoder.timeout"`
	CacheBackend   string         `yaml:"cache.backend"`
	CachePath      string         `yaml:"cache.path"`
	EphemerisDir   string         `yaml:"ephemeris.dir"`
	Database       PostgresConfig `yaml:"postgres"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad loads the configuration from environment variables (optionally seeded
// from a .env file) and returns a Config struct. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	healthPort, err := strconv.Atoi(setDefaultEnv("EOS_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(setDefaultEnv("EOS_WORKERS", "10"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer type")
	}

	geocodeTimeout, err := time.ParseDuration(setDefaultEnv("EOS_GEOCODE_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse geocode timeout from configuration")
	}

	return &Config{
		Env:            setDefaultEnv("EOS_ENV", "production"),
		Port:           healthPort,
		ProviderType:   setDefaultEnv("EOS_PROVIDER_TYPE", "nominatim"),
		APIKey:         os.Getenv("EOS_PROVIDER_KEY"),
		Workers:        workers,
		GeocodeTimeout: geocodeTimeout,
		CacheBackend:   setDefaultEnv("EOS_CACHE_BACKEND", CacheBackendFile),
		CachePath:      setDefaultEnv("EOS_CACHE_PATH", "geocode_cache.json"),
		EphemerisDir:   os.Getenv("EOS_EPHEMERIS_DIR"),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
