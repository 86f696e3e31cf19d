package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/eos/internal/geocoding"
	"github.com/UnknownOlympus/eos/internal/metrics"
	"github.com/UnknownOlympus/eos/internal/models"
)

// Input and output formats of the public evaluation entry point.
const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

// Geocoder resolves a free-text city name to a location record.
// False means resolution failed or the input was a sentinel.
type Geocoder interface {
	Resolve(ctx context.Context, city string) (*models.LocationRecord, bool)
}

// TimezoneResolver maps coordinates to an IANA zone identifier.
type TimezoneResolver interface {
	Resolve(ctx context.Context, lat, lon float64) (string, bool)
}

// DawnCalculator computes the civil dawn instant for a local calendar date,
// reporting which strategy path produced it.
type DawnCalculator interface {
	CivilDawn(year int, month time.Month, day int, lat, lon float64, loc *time.Location) (time.Time, string, error)
}

// Evaluator runs the full birth-versus-dawn pipeline: parse, geocode,
// timezone, dawn, verdict. Every failure mode is folded into the report as
// data; Evaluate never returns an error.
type Evaluator struct {
	log        *slog.Logger
	geocoder   Geocoder
	timezones  TimezoneResolver
	dawn       DawnCalculator
	metrics    *metrics.Metrics
	numWorkers int
}

// NewEvaluator creates an evaluator over the given collaborators.
func NewEvaluator(
	log *slog.Logger,
	geocoder Geocoder,
	timezones TimezoneResolver,
	dawn DawnCalculator,
	appMetrics *metrics.Metrics,
	numWorkers int,
) *Evaluator {
	return &Evaluator{
		log:        log,
		geocoder:   geocoder,
		timezones:  timezones,
		dawn:       dawn,
		metrics:    appMetrics,
		numWorkers: numWorkers,
	}
}

// Evaluate answers whether a person was born before or after civil dawn.
// dateStr is DD.MM.YYYY, timeStr is HH:MM, city is free text. The same
// inputs always produce the same report.
func (e *Evaluator) Evaluate(ctx context.Context, dateStr, timeStr, city string) models.BirthDawnReport {
	report := models.BirthDawnReport{City: city}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to parse birth date", "date", dateStr, "error", err)
		report.Error = models.ErrCodeInvalidInput
		e.metrics.EvaluationsTotal.WithLabelValues("invalid_input").Inc()
		return report
	}

	clock, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to parse birth time", "time", timeStr, "error", err)
		report.Error = models.ErrCodeInvalidInput
		e.metrics.EvaluationsTotal.WithLabelValues("invalid_input").Inc()
		return report
	}

	// An omitted city is a valid request with an unknown verdict, not an error.
	if geocoding.IsOmitted(city) {
		e.log.DebugContext(ctx, "City omitted, verdict is unknown", "city", city)
		e.metrics.EvaluationsTotal.WithLabelValues("city_omitted").Inc()
		return report
	}

	location, ok := e.geocoder.Resolve(ctx, city)
	if !ok {
		report.Error = models.ErrCodeGeocodeFailed
		e.metrics.EvaluationsTotal.WithLabelValues("geocode_failed").Inc()
		return report
	}

	report.DisplayName = location.DisplayName
	report.Latitude = &location.Latitude
	report.Longitude = &location.Longitude

	zone, ok := e.timezones.Resolve(ctx, location.Latitude, location.Longitude)
	if !ok {
		report.Error = models.ErrCodeTimezoneNotFound
		e.metrics.EvaluationsTotal.WithLabelValues("tz_not_found").Inc()
		return report
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		e.log.ErrorContext(ctx, "Resolved zone identifier is not loadable", "zone", zone, "error", err)
		report.Error = models.ErrCodeTimezoneNotFound
		e.metrics.EvaluationsTotal.WithLabelValues("tz_not_found").Inc()
		return report
	}

	report.Timezone = zone

	birth := time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		loc,
	)
	report.Birth = birth
	report.BirthDT = birth.Format(time.RFC3339)

	dawnInstant, path, err := e.dawn.CivilDawn(
		date.Year(), date.Month(), date.Day(),
		location.Latitude, location.Longitude, loc,
	)
	if err != nil {
		// No dawn on this date at this place. The verdict stays unknown but the
		// request itself succeeded, so no error code is set.
		e.log.WarnContext(ctx, "Civil dawn computation inconclusive",
			"date", dateStr, "city", city, "error", err)
		e.metrics.DawnComputations.WithLabelValues(path, "error").Inc()
		e.metrics.EvaluationsTotal.WithLabelValues("dawn_unknown").Inc()
		return report
	}

	e.metrics.DawnComputations.WithLabelValues(path, "success").Inc()

	report.Dawn = dawnInstant
	report.DawnDT = dawnInstant.Format(time.RFC3339)
	report.DawnPath = path

	// Birth exactly at dawn counts as after.
	wasDawn := !birth.Before(dawnInstant)
	report.WasDawn = &wasDawn

	e.metrics.EvaluationsTotal.WithLabelValues("success").Inc()
	e.log.InfoContext(ctx, "Evaluation completed",
		"city", city, "zone", zone, "dawn_path", path, "was_dawn", wasDawn)

	return report
}

// EvaluationRequest is one unit of batch work.
type EvaluationRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	City string `json:"city"`
}

// EvaluateBatch processes requests concurrently on a bounded worker pool and
// returns reports in input order.
func (e *Evaluator) EvaluateBatch(ctx context.Context, requests []EvaluationRequest) []models.BirthDawnReport {
	if len(requests) == 0 {
		return nil
	}

	e.log.InfoContext(ctx, "Starting batch evaluation",
		"jobs", len(requests), "num_workers", e.numWorkers)

	type job struct {
		idx     int
		request EvaluationRequest
	}

	reports := make([]models.BirthDawnReport, len(requests))
	jobs := make(chan job, len(requests))
	var wgr sync.WaitGroup

	for i := 1; i <= e.numWorkers; i++ {
		wgr.Add(1)
		go func(idx int) {
			defer wgr.Done()
			for j := range jobs {
				e.metrics.ActiveWorkers.Inc()
				e.log.DebugContext(ctx, "Processing evaluation", "worker", idx, "job", j.idx)
				reports[j.idx] = e.Evaluate(ctx, j.request.Date, j.request.Time, j.request.City)
				e.metrics.ActiveWorkers.Dec()
			}
		}(i)
	}

	for i, request := range requests {
		jobs <- job{idx: i, request: request}
	}
	close(jobs)

	wgr.Wait()
	e.log.InfoContext(ctx, "Batch evaluation finished", "jobs", len(requests))

	return reports
}
