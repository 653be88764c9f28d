package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/current"
	"github.com/kjstillabower/weather-widget/internal/models"
	"github.com/kjstillabower/weather-widget/internal/observability"
	"github.com/kjstillabower/weather-widget/internal/validation"
)

// Options configures a WidgetService. Zero values fall back to defaults.
type Options struct {
	DefaultUnits      models.UnitSystem
	LocationMinLength int
	LocationMaxLength int
	// Clock supplies the resolution instant. Defaults to time.Now.
	Clock func() time.Time
}

// WidgetService turns a free-text search into a rendered widget view: validate the input,
// fetch the forecast once, resolve the current reading. Nothing is cached between calls.
type WidgetService struct {
	client       client.ForecastClient
	defaultUnits models.UnitSystem
	minLen       int
	maxLen       int
	clock        func() time.Time
}

// NewWidgetService creates a WidgetService backed by the given forecast client.
func NewWidgetService(c client.ForecastClient, opts Options) *WidgetService {
	if opts.DefaultUnits == "" {
		opts.DefaultUnits = models.UnitsMetric
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &WidgetService{
		client:       c,
		defaultUnits: opts.DefaultUnits,
		minLen:       opts.LocationMinLength,
		maxLen:       opts.LocationMaxLength,
		clock:        opts.Clock,
	}
}

// DefaultUnits returns the unit system used when a request does not pick one.
func (s *WidgetService) DefaultUnits() models.UnitSystem {
	return s.defaultUnits
}

// GetForecast validates the location and fetches the full forecast payload.
// An empty units value selects the default unit system.
func (s *WidgetService) GetForecast(ctx context.Context, location string, units models.UnitSystem) (*models.Forecast, error) {
	_, forecast, err := s.fetch(ctx, location, units)
	return forecast, err
}

func (s *WidgetService) fetch(ctx context.Context, location string, units models.UnitSystem) (string, *models.Forecast, error) {
	loc, err := validation.ValidateLocation(location, s.minLen, s.maxLen)
	if err != nil {
		return "", nil, fmt.Errorf("validate location: %w", err)
	}
	if units == "" {
		units = s.defaultUnits
	}
	observability.RecordWeatherQuery(loc)

	start := time.Now()
	forecast, err := s.client.FetchForecast(ctx, client.TimelineParams{Location: loc, Units: units})
	if err != nil {
		observability.ForecastErrorsTotal.WithLabelValues(string(client.CategorizeError(err))).Inc()
		return loc, nil, fmt.Errorf("forecast for %s: %w", loc, err)
	}
	if logger := observability.LoggerFromContext(ctx); logger != nil {
		logger.Debug("forecast fetched",
			zap.String("location", loc),
			zap.String("resolved_address", forecast.ResolvedAddress),
			zap.Int("days", len(forecast.Days)),
			zap.Duration("duration", time.Since(start)))
	}
	return loc, forecast, nil
}

// GetCurrent fetches the forecast and resolves the current reading against the service clock.
func (s *WidgetService) GetCurrent(ctx context.Context, location string, units models.UnitSystem) (WidgetView, error) {
	if units == "" {
		units = s.defaultUnits
	}
	loc, forecast, err := s.fetch(ctx, location, units)
	if err != nil {
		return WidgetView{}, err
	}

	now := s.clock()
	res := current.Resolve(forecast, now)
	observability.RecordResolution(string(res.Source))
	if logger := observability.LoggerFromContext(ctx); logger != nil {
		logger.Debug("current conditions resolved",
			zap.String("location", loc),
			zap.String("source", string(res.Source)),
			zap.Bool("has_temperature", res.Temperature.Valid))
	}
	return buildView(loc, units, forecast, res, now), nil
}
