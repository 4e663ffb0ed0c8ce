package weather

import "printweather/internal/types"

// Location identifies where to forecast. Values are forwarded to the API
// unvalidated.
type Location struct {
	Latitude  string
	Longitude string
	Timezone  string
}

// Forecast holds today's daily aggregates.
type Forecast struct {
	Day                      string // ISO date reported by the API, e.g. 2025-06-01
	Timezone                 string
	WeatherCode              types.WeatherCode
	TempMin                  int // rounded half to even
	TempMax                  int
	PrecipitationProbability int // percent
	PrecipitationHours       float64
}
