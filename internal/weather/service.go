package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"printweather/internal/config"
	"printweather/internal/providers/openmeteo"
	"printweather/internal/types"
)

type ForecastProvider interface {
	// GetDailyForecast fetches one day of daily aggregates for the given location
	GetDailyForecast(ctx context.Context, latitude, longitude, timezone string) (*openmeteo.DailyForecastResponse, error)
}

type Service interface {
	GetTodayForecast(ctx context.Context, location Location) (*Forecast, error)
}

type weatherService struct {
	forecastProvider ForecastProvider
	logger           *slog.Logger
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) Service {
	return NewWeatherServiceWithProvider(openmeteo.NewForecastClient(cfg.Forecast.URL, logger), logger)
}

func NewWeatherServiceWithProvider(forecastProvider ForecastProvider, logger *slog.Logger) Service {
	return &weatherService{
		forecastProvider: forecastProvider,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetTodayForecast(ctx context.Context, location Location) (*Forecast, error) {
	s.logger.Debug("getting forecast",
		"latitude", location.Latitude,
		"longitude", location.Longitude,
		"timezone", location.Timezone,
	)

	apiResponse, err := s.forecastProvider.GetDailyForecast(ctx, location.Latitude, location.Longitude, location.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	forecast, err := mapDailyForecastResponseToForecast(apiResponse)
	if err != nil {
		s.logger.Debug("forecast response is missing daily data", "error", err)
		return nil, err
	}

	s.logger.Info("got forecast",
		"day", forecast.Day,
		"weather", forecast.WeatherCode.String(),
		"min", forecast.TempMin,
		"max", forecast.TempMax,
	)

	return forecast, nil
}

// mapDailyForecastResponseToForecast extracts index 0 (today) of every daily
// array. A missing array, an empty one or a null entry makes the whole
// response unusable.
func mapDailyForecastResponseToForecast(apiResponse *openmeteo.DailyForecastResponse) (*Forecast, error) {
	unexpected := func(field string) error {
		return fmt.Errorf("%w (missing daily.%s): %s", openmeteo.ErrUnexpectedResponse, field, apiResponse.Raw)
	}

	daily := apiResponse.Daily
	if daily == nil {
		return nil, unexpected("*")
	}

	code, ok := first(daily.WeatherCode)
	if !ok {
		return nil, unexpected("weather_code")
	}
	tempMax, ok := first(daily.Temperature2MMax)
	if !ok {
		return nil, unexpected("temperature_2m_max")
	}
	tempMin, ok := first(daily.Temperature2MMin)
	if !ok {
		return nil, unexpected("temperature_2m_min")
	}
	precipChance, ok := first(daily.PrecipitationProbabilityMax)
	if !ok {
		return nil, unexpected("precipitation_probability_max")
	}
	precipHours, ok := first(daily.PrecipitationHours)
	if !ok {
		return nil, unexpected("precipitation_hours")
	}

	var day string
	if len(daily.Time) > 0 {
		day = daily.Time[0]
	}

	return &Forecast{
		Day:                      day,
		Timezone:                 apiResponse.Timezone,
		WeatherCode:              types.WeatherCode(code),
		TempMin:                  roundTemperature(tempMin),
		TempMax:                  roundTemperature(tempMax),
		PrecipitationProbability: int(math.Round(precipChance)),
		PrecipitationHours:       precipHours,
	}, nil
}

func first[T any](values []*T) (T, bool) {
	var zero T
	if len(values) == 0 || values[0] == nil {
		return zero, false
	}
	return *values[0], true
}

// roundTemperature rounds half to even, so 10.5 prints as 10 and 11.5 as 12.
func roundTemperature(v float64) int {
	return int(math.RoundToEven(v))
}
