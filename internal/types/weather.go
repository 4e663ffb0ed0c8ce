package types

import "sort"

// WeatherCode represents a WMO weather code as reported by Open-Meteo
type WeatherCode int

// Weather code constants
const (
	ClearSky                     WeatherCode = 0
	MainlyClear                  WeatherCode = 1
	PartlyCloudy                 WeatherCode = 2
	Overcast                     WeatherCode = 3
	Fog                          WeatherCode = 45
	DepositingRimeFog            WeatherCode = 48
	DrizzleLight                 WeatherCode = 51
	DrizzleModerate              WeatherCode = 53
	DrizzleDense                 WeatherCode = 55
	FreezingDrizzleLight         WeatherCode = 56
	FreezingDrizzleDense         WeatherCode = 57
	RainSlight                   WeatherCode = 61
	RainModerate                 WeatherCode = 63
	RainHeavy                    WeatherCode = 65
	FreezingRainLight            WeatherCode = 66
	FreezingRainHeavy            WeatherCode = 67
	SnowFallSlight               WeatherCode = 71
	SnowFallModerate             WeatherCode = 73
	SnowFallHeavy                WeatherCode = 75
	SnowGrains                   WeatherCode = 77
	RainShowersSlight            WeatherCode = 80
	RainShowersModerate          WeatherCode = 81
	RainShowersViolent           WeatherCode = 82
	SnowShowersSlight            WeatherCode = 85
	SnowShowersHeavy             WeatherCode = 86
	ThunderstormSlightOrModerate WeatherCode = 95
	ThunderstormWithSlightHail   WeatherCode = 96
	ThunderstormWithHeavyHail    WeatherCode = 99
)

// weatherDescriptions maps weather codes to their descriptions
var weatherDescriptions = map[WeatherCode]string{
	ClearSky:                     "Clear sky",
	MainlyClear:                  "Mainly clear",
	PartlyCloudy:                 "Partly cloudy",
	Overcast:                     "Overcast",
	Fog:                          "Fog",
	DepositingRimeFog:            "Depositing rime fog",
	DrizzleLight:                 "Drizzle: Light intensity",
	DrizzleModerate:              "Drizzle: Moderate intensity",
	DrizzleDense:                 "Drizzle: Dense intensity",
	FreezingDrizzleLight:         "Freezing Drizzle: Light intensity",
	FreezingDrizzleDense:         "Freezing Drizzle: Dense intensity",
	RainSlight:                   "Rainfall: Slight intensity",
	RainModerate:                 "Rainfall: Moderate intensity",
	RainHeavy:                    "Rainfall: Heavy intensity",
	FreezingRainLight:            "Freezing Rainfall: Light intensity",
	FreezingRainHeavy:            "Freezing Rainfall: Heavy intensity",
	SnowFallSlight:               "Snow fall: Slight intensity",
	SnowFallModerate:             "Snow fall: Moderate intensity",
	SnowFallHeavy:                "Snow fall: Heavy intensity",
	SnowGrains:                   "Snow grains",
	RainShowersSlight:            "Rainfall showers: Slight",
	RainShowersModerate:          "Rainfall showers: Moderate",
	RainShowersViolent:           "Rainfall showers: Violent",
	SnowShowersSlight:            "Snow showers: Slight",
	SnowShowersHeavy:             "Snow showers: Heavy",
	ThunderstormSlightOrModerate: "Thunderstorm: Slight or moderate",
	ThunderstormWithSlightHail:   "Thunderstorm with slight hail",
	ThunderstormWithHeavyHail:    "Thunderstorm with heavy hail",
}

// String returns the description for the weather code, or "Unknown"
func (c WeatherCode) String() string {
	if desc, ok := weatherDescriptions[c]; ok {
		return desc
	}
	return "Unknown"
}

// Known reports whether c is one of the documented WMO codes
func (c WeatherCode) Known() bool {
	_, ok := weatherDescriptions[c]
	return ok
}

// KnownWeatherCodes returns every documented WMO code in ascending order
func KnownWeatherCodes() []WeatherCode {
	codes := make([]WeatherCode, 0, len(weatherDescriptions))
	for code := range weatherDescriptions {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
