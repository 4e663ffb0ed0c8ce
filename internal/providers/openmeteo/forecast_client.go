package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=51.5072&longitude=-0.1276&daily=weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max,precipitation_hours&timezone=Europe%2FLondon&forecast_days=1
const (
	BaseForecastURL = "https://api.open-meteo.com/v1/forecast"

	forecastDays = 1
)

var dailyVars = []string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_probability_max",
	"precipitation_hours",
}

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewForecastClient creates a client for the forecast endpoint at baseURL.
// An empty baseURL selects the public Open-Meteo endpoint.
func NewForecastClient(baseURL string, logger *slog.Logger) *ForecastClient {
	if baseURL == "" {
		baseURL = BaseForecastURL
	}
	return &ForecastClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-client"),
	}
}

// GetDailyForecast fetches one day of daily aggregates for the given location.
// Coordinates and timezone are passed through unvalidated; the API rejects
// malformed values with an error body, reported as *APIError.
func (c *ForecastClient) GetDailyForecast(ctx context.Context, latitude, longitude, timezone string) (*DailyForecastResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", latitude)
	q.Set("longitude", longitude)
	q.Set("daily", strings.Join(dailyVars, ","))
	q.Set("timezone", timezone)
	q.Set("forecast_days", strconv.Itoa(forecastDays))
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching daily forecast", "url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch forecast", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	raw := string(body)

	var errResp errorBody
	if err := json.Unmarshal(body, &errResp); err != nil {
		c.logger.Error("failed to decode forecast response",
			"status_code", resp.StatusCode,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, raw)
	}
	if len(errResp.Error) > 0 {
		c.logger.Error("forecast API returned error",
			"status_code", resp.StatusCode,
			"reason", errResp.Reason,
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Reason: errResp.Reason, Body: raw}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, raw)
	}

	var apiResp DailyForecastResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, raw)
	}
	apiResp.Raw = raw

	return &apiResp, nil
}
