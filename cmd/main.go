package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/UnknownOlympus/eos/internal/config"
	"github.com/UnknownOlympus/eos/internal/dawn"
	"github.com/UnknownOlympus/eos/internal/geocoding"
	"github.com/UnknownOlympus/eos/internal/metrics"
	"github.com/UnknownOlympus/eos/internal/models"
	"github.com/UnknownOlympus/eos/internal/numerology"
	"github.com/UnknownOlympus/eos/internal/repository"
	"github.com/UnknownOlympus/eos/internal/service"
	"github.com/UnknownOlympus/eos/internal/timezone"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// pinger is the backend liveness check used by the health endpoint.
type pinger interface {
	Ping(ctx context.Context) error
}

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Select the geocode cache backend. The file backend needs no external
	// services; the postgres backend is for sharing one cache between instances.
	var cache repository.Interface
	var dbPinger pinger
	switch cfg.CacheBackend {
	case config.CacheBackendPostgres:
		dtb, err := repository.NewDatabase(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		pgRepo := repository.NewPostgresRepository(dtb, logger)
		if err = pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure cache schema: %v", err)
		}
		cache, dbPinger = pgRepo, dtb
	case config.CacheBackendFile:
		cache = repository.NewFileRepository(cfg.CachePath, logger)
	default:
		log.Fatalf("Unsupported cache backend: %s", cfg.CacheBackend)
	}

	logger.InfoContext(ctx, "Geocode cache initialized", "backend", cfg.CacheBackend)

	// Create geocoding provider using factory pattern based on configuration
	// This allows runtime selection between different providers (Google, Nominatim, etc.)
	rateLimit := 50
	providerConfig := geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: rateLimit / cfg.Workers,
		Logger:    logger,
	}

	geoProvider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	geocoder := geocoding.NewResolver(
		logger, cache, geoProvider, cfg.ProviderType, appMetrics, cfg.GeocodeTimeout,
	)

	tzFinder, err := timezone.NewFinder()
	if err != nil {
		log.Fatalf("Failed to create timezone finder: %v", err)
	}
	timezones := timezone.NewResolver(tzFinder, logger)

	// The ephemeris strategy is primary; the closed-form strategy covers any
	// failure of it.
	dawnCalc := dawn.NewCalculator(
		logger,
		dawn.NewEphemerisStrategy(logger, cfg.EphemerisDir),
		dawn.NewGeometricStrategy(logger),
	)

	evaluator := service.NewEvaluator(logger, geocoder, timezones, dawnCalc, appMetrics, cfg.Workers)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the API server in a goroutine to allow main to listen for signals.
	go startServer(ctx, logger, reg, dbPinger, evaluator, cfg.Port)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startServer starts the HTTP server carrying the health check, metrics and
// evaluation endpoints. It listens on the specified port and logs the
// server's status and any errors encountered.
func startServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb pinger,
	evaluator *service.Evaluator,
	port int,
) {
	http.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if dtb != nil {
			if err := dtb.Ping(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	http.HandleFunc("/v1/dawn", handleDawn(log, evaluator))
	http.HandleFunc("/v1/dawn/batch", handleDawnBatch(log, evaluator))
	http.HandleFunc("/v1/numerology", handleNumerology(log))

	log.InfoContext(ctx, "Starting server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      http.DefaultServeMux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Server failed", "error", err)
	}
}

// handleDawn evaluates one birth-versus-dawn request passed as query
// parameters: date=DD.MM.YYYY, time=HH:MM, city=free text.
func handleDawn(log *slog.Logger, evaluator *service.Evaluator) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet {
			http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := request.URL.Query()
		report := evaluator.Evaluate(request.Context(), query.Get("date"), query.Get("time"), query.Get("city"))

		status := http.StatusOK
		if report.Error == models.ErrCodeInvalidInput {
			status = http.StatusBadRequest
		}

		writeJSON(log, writer, status, report)
	}
}

// handleDawnBatch evaluates a JSON array of requests posted in the body and
// returns reports in input order.
func handleDawnBatch(log *slog.Logger, evaluator *service.Evaluator) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var requests []service.EvaluationRequest
		if err := json.NewDecoder(request.Body).Decode(&requests); err != nil {
			http.Error(writer, "malformed request body", http.StatusBadRequest)
			return
		}

		reports := evaluator.EvaluateBatch(request.Context(), requests)
		writeJSON(log, writer, http.StatusOK, reports)
	}
}

// numerologyResponse bundles the birth-date numbers with the yearly forecast.
type numerologyResponse struct {
	Date     string                  `json:"date"`
	Core     numerology.CoreNumbers  `json:"core"`
	Forecast numerology.YearForecast `json:"year_forecast"`
}

// handleNumerology computes the birth-date numbers for date=DD.MM.YYYY,
// projecting the yearly forecast into year=YYYY (default: the date's year).
func handleNumerology(log *slog.Logger) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet {
			http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := request.URL.Query()
		birth, err := time.Parse("02.01.2006", query.Get("date"))
		if err != nil {
			http.Error(writer, "malformed date, want DD.MM.YYYY", http.StatusBadRequest)
			return
		}

		targetYear := birth.Year()
		if raw := query.Get("year"); raw != "" {
			if targetYear, err = strconv.Atoi(raw); err != nil {
				http.Error(writer, "malformed year", http.StatusBadRequest)
				return
			}
		}

		forecast, err := numerology.VedicYear(birth.Day(), birth.Month(), targetYear)
		if err != nil {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(log, writer, http.StatusOK, numerologyResponse{
			Date:     query.Get("date"),
			Core:     numerology.Calculate(birth),
			Forecast: forecast,
		})
	}
}

func writeJSON(log *slog.Logger, writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		log.Error("failed to write reply", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
