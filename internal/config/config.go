package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default location, used when neither an argument nor an environment variable
// is supplied.
const (
	DefaultLatitude  = "51.5072"
	DefaultLongitude = "-0.1276"
	DefaultTimezone  = "Europe/London"
)

// locationKeys are the location settings in positional argument order.
var locationKeys = []string{"location.latitude", "location.longitude", "location.timezone"}

var locationEnv = map[string]string{
	"location.latitude":  "LATITUDE",
	"location.longitude": "LONGITUDE",
	"location.timezone":  "TIMEZONE",
}

// Config holds all configuration for the application
type Config struct {
	Location LocationConfig
	Log      LogConfig
	Forecast ForecastConfig
	Icons    IconsConfig
	Raster   RasterConfig
	Printer  PrinterConfig
	Server   ServerConfig
}

// LocationConfig holds the forecast location. Values are passed to the
// forecast API as given, without validation.
type LocationConfig struct {
	Latitude  string
	Longitude string
	Timezone  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ForecastConfig holds the forecast endpoint
type ForecastConfig struct {
	URL string
}

// IconsConfig holds the weather icon location and download source
type IconsConfig struct {
	Dir       string  // Root of the weather-icons checkout, SVGs live in Dir/svg
	BaseURL   string  // Remote directory the icons are downloaded from
	RateLimit float64 // Downloads per second
}

// RasterConfig holds the ImageMagick invocation parameters
type RasterConfig struct {
	Command string
	Size    int
	Density int
}

// PrinterConfig holds ESC-POS output options
type PrinterConfig struct {
	UpsideDown bool
}

// ServerConfig holds ticket server configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// Load reads configuration from file and environment variables. args are the
// positional command-line values (latitude, longitude, timezone); each one
// present takes precedence over its environment variable.
func Load(args []string) (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("printweather")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.printweather")

	// Set defaults
	v.SetDefault("location.latitude", DefaultLatitude)
	v.SetDefault("location.longitude", DefaultLongitude)
	v.SetDefault("location.timezone", DefaultTimezone)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("forecast.url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("icons.dir", defaultIconsDir())
	v.SetDefault("icons.baseurl", "https://raw.githubusercontent.com/erikflowers/weather-icons/master/svg/")
	v.SetDefault("icons.ratelimit", 5.0)
	v.SetDefault("raster.command", "convert")
	v.SetDefault("raster.size", 256)
	v.SetDefault("raster.density", 900)
	v.SetDefault("printer.upsidedown", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")

	// Read from environment variables
	v.SetEnvPrefix("PRINTWEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unprefixed location variables override the prefixed ones. A set but
	// empty value is kept.
	for _, key := range locationKeys {
		if val, ok := os.LookupEnv(locationEnv[key]); ok {
			v.Set(key, val)
		}
	}

	// Positional arguments win over everything else
	for i, key := range locationKeys {
		if i < len(args) {
			v.Set(key, args[i])
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// defaultIconsDir returns the weather-icons directory next to the executable.
func defaultIconsDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "weather-icons"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "weather-icons")
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration. Standard
// output carries printer data, so callers normally pass os.Stderr.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
