package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// unsetenv removes name for the duration of the test.
func unsetenv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	if err := os.Unsetenv(name); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_LocationPrecedence(t *testing.T) {
	envNames := []string{"LATITUDE", "LONGITUDE", "TIMEZONE"}
	defaults := []string{DefaultLatitude, DefaultLongitude, DefaultTimezone}
	envValues := []string{"48.8566", "2.3522", "Europe/Paris"}
	argValues := []string{"40.7128", "-74.0060", "America/New_York"}

	// Every combination of set/unset environment variables, crossed with
	// zero to three positional arguments.
	for envMask := 0; envMask < 8; envMask++ {
		for nargs := 0; nargs <= 3; nargs++ {
			name := fmt.Sprintf("env=%03b args=%d", envMask, nargs)
			t.Run(name, func(t *testing.T) {
				for i, env := range envNames {
					if envMask&(1<<i) != 0 {
						t.Setenv(env, envValues[i])
					} else {
						unsetenv(t, env)
					}
				}

				cfg, err := Load(argValues[:nargs])
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}

				got := []string{cfg.Location.Latitude, cfg.Location.Longitude, cfg.Location.Timezone}
				for i := range got {
					var want string
					switch {
					case i < nargs:
						want = argValues[i]
					case envMask&(1<<i) != 0:
						want = envValues[i]
					default:
						want = defaults[i]
					}
					if got[i] != want {
						t.Errorf("%s = %q, want %q", envNames[i], got[i], want)
					}
				}
			})
		}
	}
}

func TestLoad_PassesMalformedValuesThrough(t *testing.T) {
	cfg, err := Load([]string{"north", "", "Mars/Olympus"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Location.Latitude != "north" {
		t.Errorf("Latitude = %q, want %q", cfg.Location.Latitude, "north")
	}
	if cfg.Location.Timezone != "Mars/Olympus" {
		t.Errorf("Timezone = %q, want %q", cfg.Location.Timezone, "Mars/Olympus")
	}
}

func TestLoad_LocationEnvironmentSources(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		wantLat  string
		wantZone string
	}{
		{
			name:     "unprefixed beats prefixed",
			env:      map[string]string{"LATITUDE": "2", "PRINTWEATHER_LOCATION_LATITUDE": "1"},
			wantLat:  "2",
			wantZone: DefaultTimezone,
		},
		{
			name:     "prefixed used when unprefixed unset",
			env:      map[string]string{"PRINTWEATHER_LOCATION_LATITUDE": "1"},
			wantLat:  "1",
			wantZone: DefaultTimezone,
		},
		{
			name:     "empty value passed through",
			env:      map[string]string{"LATITUDE": "", "TIMEZONE": ""},
			wantLat:  "",
			wantZone: "",
		},
		{
			name:     "argument beats empty value",
			env:      map[string]string{"LATITUDE": ""},
			args:     []string{"3"},
			wantLat:  "3",
			wantZone: DefaultTimezone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, env := range []string{"LATITUDE", "LONGITUDE", "TIMEZONE", "PRINTWEATHER_LOCATION_LATITUDE"} {
				unsetenv(t, env)
			}
			for name, value := range tt.env {
				t.Setenv(name, value)
			}

			cfg, err := Load(tt.args)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Location.Latitude != tt.wantLat {
				t.Errorf("Latitude = %q, want %q", cfg.Location.Latitude, tt.wantLat)
			}
			if cfg.Location.Timezone != tt.wantZone {
				t.Errorf("Timezone = %q, want %q", cfg.Location.Timezone, tt.wantZone)
			}
			if cfg.Location.Longitude != DefaultLongitude {
				t.Errorf("Longitude = %q, want %q", cfg.Location.Longitude, DefaultLongitude)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Forecast.URL != "https://api.open-meteo.com/v1/forecast" {
		t.Errorf("Forecast.URL = %q", cfg.Forecast.URL)
	}
	if cfg.Raster.Command != "convert" {
		t.Errorf("Raster.Command = %q, want convert", cfg.Raster.Command)
	}
	if cfg.Raster.Size != 256 || cfg.Raster.Density != 900 {
		t.Errorf("Raster = %+v, want size 256 density 900", cfg.Raster)
	}
	if !cfg.Printer.UpsideDown {
		t.Error("Printer.UpsideDown = false, want true")
	}
	if !strings.HasSuffix(cfg.Icons.Dir, "weather-icons") {
		t.Errorf("Icons.Dir = %q, want suffix weather-icons", cfg.Icons.Dir)
	}
	if cfg.GetServerAddr() != ":8080" {
		t.Errorf("GetServerAddr() = %q, want :8080", cfg.GetServerAddr())
	}
}

func TestLoad_PrefixedEnvironment(t *testing.T) {
	t.Setenv("PRINTWEATHER_RASTER_COMMAND", "magick")
	t.Setenv("PRINTWEATHER_PRINTER_UPSIDEDOWN", "false")
	t.Setenv("PRINTWEATHER_ICONS_DIR", "/opt/icons")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Raster.Command != "magick" {
		t.Errorf("Raster.Command = %q, want magick", cfg.Raster.Command)
	}
	if cfg.Printer.UpsideDown {
		t.Error("Printer.UpsideDown = true, want false")
	}
	if cfg.Icons.Dir != "/opt/icons" {
		t.Errorf("Icons.Dir = %q, want /opt/icons", cfg.Icons.Dir)
	}
}

func TestConfig_NewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		logDebug  bool
		wantJSON  bool
		wantEmpty bool
	}{
		{name: "text info drops debug", level: "info", format: "text", logDebug: true, wantEmpty: true},
		{name: "text debug", level: "debug", format: "text", logDebug: true},
		{name: "json", level: "warning", format: "JSON", wantJSON: true},
		{name: "unknown level falls back to info", level: "loud", format: "text", logDebug: true, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Log: LogConfig{Level: tt.level, Format: tt.format}}
			var buf bytes.Buffer
			logger := cfg.NewLogger(&buf)

			if tt.logDebug {
				logger.Debug("hello")
			} else {
				logger.Error("hello")
			}

			out := buf.String()
			if tt.wantEmpty {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, "hello") {
				t.Errorf("output %q does not contain message", out)
			}
			if tt.wantJSON != strings.HasPrefix(out, "{") {
				t.Errorf("output %q, want JSON = %v", out, tt.wantJSON)
			}
		})
	}
}
