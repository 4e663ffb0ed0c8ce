package openmeteo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedResponse is returned when the forecast body cannot be decoded or
// lacks the requested daily variables.
var ErrUnexpectedResponse = errors.New("unexpected API response format")

// ErrFetchFailed is returned when the forecast endpoint cannot be reached.
var ErrFetchFailed = errors.New("error fetching weather data")

// DailyForecastResponse is the subset of the forecast API response requested
// by GetDailyForecast. Daily values are parallel arrays indexed by day; a null
// entry decodes to a nil pointer.
type DailyForecastResponse struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	GenerationtimeMs float64 `json:"generationtime_ms"`
	UtcOffsetSeconds int     `json:"utc_offset_seconds"`
	Timezone         string  `json:"timezone"`
	Elevation        float64 `json:"elevation"`

	DailyUnits map[string]string `json:"daily_units"`
	Daily      *Daily            `json:"daily"`

	// Raw is the undecoded response body, kept for diagnostics.
	Raw string `json:"-"`
}

type Daily struct {
	Time                        []string   `json:"time"`
	WeatherCode                 []*int     `json:"weather_code"`
	Temperature2MMax            []*float64 `json:"temperature_2m_max"`
	Temperature2MMin            []*float64 `json:"temperature_2m_min"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	PrecipitationHours          []*float64 `json:"precipitation_hours"`
}

// errorBody is what the API sends instead of a forecast when a parameter is
// rejected, e.g. {"error":true,"reason":"Latitude must be in range of -90 to 90°."}
type errorBody struct {
	Error  json.RawMessage `json:"error"`
	Reason string          `json:"reason"`
}

// APIError reports an error flagged in the response body.
type APIError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error from weather API (status %d): %s", e.StatusCode, e.Body)
}
