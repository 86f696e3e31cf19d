package service_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/eos/internal/dawn"
	"github.com/UnknownOlympus/eos/internal/metrics"
	"github.com/UnknownOlympus/eos/internal/models"
	"github.com/UnknownOlympus/eos/internal/service"
	"github.com/UnknownOlympus/eos/internal/timezone"
	"github.com/UnknownOlympus/eos/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEvaluator(t *testing.T) (*service.Evaluator, *mocks.Geocoder, *mocks.TimezoneResolver, *mocks.DawnCalculator) {
	t.Helper()

	mockGeocoder := mocks.NewGeocoder(t)
	mockTimezones := mocks.NewTimezoneResolver(t)
	mockDawn := mocks.NewDawnCalculator(t)
	reg := prometheus.NewRegistry()

	evaluator := service.NewEvaluator(
		slog.Default(), mockGeocoder, mockTimezones, mockDawn, metrics.NewMetrics(reg), 4,
	)

	return evaluator, mockGeocoder, mockTimezones, mockDawn
}

func penzaRecord() *models.LocationRecord {
	return &models.LocationRecord{
		Latitude:    53.1959,
		Longitude:   45.0183,
		DisplayName: "Penza, Penza Oblast, Russia",
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	ctx := t.Context()
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	t.Run("malformed date yields invalid_input", func(t *testing.T) {
		evaluator, mockGeocoder, _, _ := newEvaluator(t)

		report := evaluator.Evaluate(ctx, "1991-03-12", "06:30", "Penza")

		assert.Equal(t, models.ErrCodeInvalidInput, report.Error)
		assert.Nil(t, report.WasDawn)
		mockGeocoder.AssertNotCalled(t, "Resolve")
	})

	t.Run("malformed time yields invalid_input", func(t *testing.T) {
		evaluator, mockGeocoder, _, _ := newEvaluator(t)

		report := evaluator.Evaluate(ctx, "12.03.1991", "6:30pm", "Penza")

		assert.Equal(t, models.ErrCodeInvalidInput, report.Error)
		assert.Nil(t, report.WasDawn)
		mockGeocoder.AssertNotCalled(t, "Resolve")
	})

	t.Run("omitted city yields unknown verdict without error", func(t *testing.T) {
		evaluator, mockGeocoder, _, _ := newEvaluator(t)

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "неизвестно")

		assert.Empty(t, report.Error)
		assert.Nil(t, report.WasDawn)
		assert.Empty(t, report.Timezone)
		mockGeocoder.AssertNotCalled(t, "Resolve")
	})

	t.Run("geocoding failure yields geocode_failed", func(t *testing.T) {
		evaluator, mockGeocoder, _, _ := newEvaluator(t)
		mockGeocoder.On("Resolve", ctx, "Atlantis").Return(nil, false).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Atlantis")

		assert.Equal(t, models.ErrCodeGeocodeFailed, report.Error)
		assert.Nil(t, report.WasDawn)
		assert.Nil(t, report.Latitude)
	})

	t.Run("timezone failure yields tz_not_found", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, _ := newEvaluator(t)
		record := penzaRecord()
		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("", false).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")

		assert.Equal(t, models.ErrCodeTimezoneNotFound, report.Error)
		assert.Nil(t, report.WasDawn)
		// Coordinates survive so the caller can still render the place.
		require.NotNil(t, report.Latitude)
		assert.InEpsilon(t, record.Latitude, *report.Latitude, 1e-9)
	})

	t.Run("unloadable zone identifier yields tz_not_found", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, _ := newEvaluator(t)
		record := penzaRecord()
		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Mars/Olympus_Mons", true).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")

		assert.Equal(t, models.ErrCodeTimezoneNotFound, report.Error)
		assert.Nil(t, report.WasDawn)
	})

	t.Run("birth after dawn", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := penzaRecord()
		dawnInstant := time.Date(1991, time.March, 12, 5, 55, 12, 0, moscow)

		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Moscow", true).Once()
		mockDawn.On("CivilDawn", 1991, time.March, 12, record.Latitude, record.Longitude, mock.Anything).
			Return(dawnInstant, "ephemeris", nil).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")

		assert.Empty(t, report.Error)
		require.NotNil(t, report.WasDawn)
		assert.True(t, *report.WasDawn)
		assert.Equal(t, "Europe/Moscow", report.Timezone)
		assert.Equal(t, "ephemeris", report.DawnPath)
		assert.Equal(t, dawnInstant.Format(time.RFC3339), report.DawnDT)
	})

	t.Run("birth before dawn", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := penzaRecord()
		dawnInstant := time.Date(1991, time.March, 12, 5, 55, 12, 0, moscow)

		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Moscow", true).Once()
		mockDawn.On("CivilDawn", 1991, time.March, 12, record.Latitude, record.Longitude, mock.Anything).
			Return(dawnInstant, "ephemeris", nil).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "04:10", "Penza")

		require.NotNil(t, report.WasDawn)
		assert.False(t, *report.WasDawn)
	})

	t.Run("birth exactly at dawn counts as after", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := penzaRecord()
		dawnInstant := time.Date(1991, time.March, 12, 6, 30, 0, 0, moscow)

		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Moscow", true).Once()
		mockDawn.On("CivilDawn", 1991, time.March, 12, record.Latitude, record.Longitude, mock.Anything).
			Return(dawnInstant, "ephemeris", nil).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")

		require.NotNil(t, report.WasDawn)
		assert.True(t, *report.WasDawn)
	})

	t.Run("a microsecond before dawn counts as before", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := penzaRecord()
		dawnInstant := time.Date(1991, time.March, 12, 6, 30, 0, 1000, moscow)

		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Moscow", true).Once()
		mockDawn.On("CivilDawn", 1991, time.March, 12, record.Latitude, record.Longitude, mock.Anything).
			Return(dawnInstant, "ephemeris", nil).Once()

		report := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")

		require.NotNil(t, report.WasDawn)
		assert.False(t, *report.WasDawn)
	})

	t.Run("dawn failure yields unknown verdict without error code", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := &models.LocationRecord{Latitude: 69.6492, Longitude: 18.9553, DisplayName: "Tromsø, Norway"}

		mockGeocoder.On("Resolve", ctx, "Tromsø").Return(record, true).Once()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Oslo", true).Once()
		mockDawn.On("CivilDawn", 2020, time.June, 21, record.Latitude, record.Longitude, mock.Anything).
			Return(time.Time{}, "geometric", assert.AnError).Once()

		report := evaluator.Evaluate(ctx, "21.06.2020", "02:00", "Tromsø")

		assert.Empty(t, report.Error)
		assert.Nil(t, report.WasDawn)
		assert.Empty(t, report.DawnDT)
		assert.NotEmpty(t, report.BirthDT)
	})

	t.Run("repeated evaluation is idempotent", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := penzaRecord()
		dawnInstant := time.Date(1991, time.March, 12, 5, 55, 12, 0, moscow)

		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true).Twice()
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Moscow", true).Twice()
		mockDawn.On("CivilDawn", 1991, time.March, 12, record.Latitude, record.Longitude, mock.Anything).
			Return(dawnInstant, "ephemeris", nil).Twice()

		first := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")
		second := evaluator.Evaluate(ctx, "12.03.1991", "06:30", "Penza")

		assert.Equal(t, first, second)
	})
}

// End-to-end over the real timezone and dawn components; only the geocoder is
// substituted so no network is involved.
func TestEvaluator_EndToEnd(t *testing.T) {
	ctx := t.Context()

	mockGeocoder := mocks.NewGeocoder(t)
	mockGeocoder.On("Resolve", ctx, "Penza").Return(penzaRecord(), true).Once()

	tzFinder, err := timezone.NewFinder()
	require.NoError(t, err)

	logger := slog.Default()
	evaluator := service.NewEvaluator(
		logger,
		mockGeocoder,
		timezone.NewResolver(tzFinder, logger),
		dawn.NewCalculator(logger, dawn.NewEphemerisStrategy(logger, ""), dawn.NewGeometricStrategy(logger)),
		metrics.NewMetrics(prometheus.NewRegistry()),
		4,
	)

	report := evaluator.Evaluate(ctx, "12.03.1991", "03:25", "Penza")

	assert.Empty(t, report.Error)
	assert.Equal(t, "Europe/Moscow", report.Timezone)
	require.NotNil(t, report.Latitude)
	assert.InDelta(t, 53.2, *report.Latitude, 0.1)
	require.NotNil(t, report.Longitude)
	assert.InDelta(t, 45.0, *report.Longitude, 0.1)
	assert.NotEmpty(t, report.DawnDT)
	assert.Equal(t, "ephemeris", report.DawnPath)
	// 03:25 local in mid-March is well before civil dawn.
	require.NotNil(t, report.WasDawn)
	assert.False(t, *report.WasDawn)
	assert.True(t, report.Dawn.After(report.Birth))
	assert.Equal(t, 12, report.Dawn.Day())
}

func TestEvaluator_EvaluateBatch(t *testing.T) {
	ctx := t.Context()
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	t.Run("empty batch yields nil", func(t *testing.T) {
		evaluator, _, _, _ := newEvaluator(t)

		assert.Nil(t, evaluator.EvaluateBatch(ctx, nil))
	})

	t.Run("reports come back in input order", func(t *testing.T) {
		evaluator, mockGeocoder, mockTimezones, mockDawn := newEvaluator(t)
		record := penzaRecord()
		dawnInstant := time.Date(1991, time.March, 12, 5, 55, 12, 0, moscow)

		mockGeocoder.On("Resolve", ctx, "Penza").Return(record, true)
		mockTimezones.On("Resolve", ctx, record.Latitude, record.Longitude).Return("Europe/Moscow", true)
		mockDawn.On("CivilDawn", 1991, time.March, 12, record.Latitude, record.Longitude, mock.Anything).
			Return(dawnInstant, "ephemeris", nil)

		requests := []service.EvaluationRequest{
			{Date: "12.03.1991", Time: "04:10", City: "Penza"},
			{Date: "not-a-date", Time: "06:30", City: "Penza"},
			{Date: "12.03.1991", Time: "06:30", City: "Penza"},
			{Date: "12.03.1991", Time: "06:30", City: "unknown"},
		}

		reports := evaluator.EvaluateBatch(ctx, requests)

		require.Len(t, reports, 4)
		require.NotNil(t, reports[0].WasDawn)
		assert.False(t, *reports[0].WasDawn)
		assert.Equal(t, models.ErrCodeInvalidInput, reports[1].Error)
		require.NotNil(t, reports[2].WasDawn)
		assert.True(t, *reports[2].WasDawn)
		assert.Nil(t, reports[3].WasDawn)
		assert.Empty(t, reports[3].Error)
	})
}
