// Package icons maps WMO weather codes to the erikflowers/weather-icons SVG
// set and fetches that set when it is not installed.
package icons

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"printweather/internal/types"
)

// Unavailable is the icon used for codes without a mapping.
const Unavailable = "wi-na.svg"

var ErrIconsMissing = errors.New("weather-icons directory not found")

var iconNames = map[types.WeatherCode]string{
	types.ClearSky:                     "wi-day-sunny.svg",
	types.MainlyClear:                  "wi-day-cloudy.svg",
	types.PartlyCloudy:                 "wi-cloudy.svg",
	types.Overcast:                     "wi-cloudy.svg",
	types.Fog:                          "wi-fog.svg",
	types.DepositingRimeFog:            "wi-fog.svg",
	types.DrizzleLight:                 "wi-sprinkle.svg",
	types.DrizzleModerate:              "wi-sprinkle.svg",
	types.DrizzleDense:                 "wi-sprinkle.svg",
	types.FreezingDrizzleLight:         "wi-sleet.svg",
	types.FreezingDrizzleDense:         "wi-sleet.svg",
	types.RainSlight:                   "wi-day-rain.svg",
	types.RainModerate:                 "wi-rain.svg",
	types.RainHeavy:                    "wi-rain.svg",
	types.FreezingRainLight:            "wi-sleet.svg",
	types.FreezingRainHeavy:            "wi-sleet.svg",
	types.SnowFallSlight:               "wi-snow.svg",
	types.SnowFallModerate:             "wi-snow.svg",
	types.SnowFallHeavy:                "wi-snow.svg",
	types.SnowGrains:                   "wi-snow.svg",
	types.RainShowersSlight:            "wi-day-showers.svg",
	types.RainShowersModerate:          "wi-showers.svg",
	types.RainShowersViolent:           "wi-showers.svg",
	types.SnowShowersSlight:            "wi-day-snow.svg",
	types.SnowShowersHeavy:             "wi-day-snow.svg",
	types.ThunderstormSlightOrModerate: "wi-thunderstorm.svg",
	types.ThunderstormWithSlightHail:   "wi-storm-showers.svg",
	types.ThunderstormWithHeavyHail:    "wi-storm-showers.svg",
}

// Name returns the icon file name for a weather code.
func Name(code types.WeatherCode) string {
	if name, ok := iconNames[code]; ok {
		return name
	}
	return Unavailable
}

// Path returns the icon file for a weather code inside the weather-icons
// directory dir.
func Path(dir string, code types.WeatherCode) string {
	return filepath.Join(dir, "svg", Name(code))
}

// DownloadList returns every icon file Name can produce, sorted.
func DownloadList() []string {
	seen := map[string]bool{Unavailable: true}
	for _, name := range iconNames {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckDir verifies the weather-icons directory is installed.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s\n"+
			"Please run 'git submodule update --init', 'git clone https://github.com/erikflowers/weather-icons' "+
			"or 'printweather --download-icons'", ErrIconsMissing, dir)
	}
	return nil
}
