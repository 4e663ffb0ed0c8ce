package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"printweather/internal/config"
	"printweather/internal/escpos"
	"printweather/internal/icons"
	"printweather/internal/raster"
	"printweather/internal/ticket"
	"printweather/internal/timezone"
	"printweather/internal/weather"

	"github.com/gin-gonic/gin"
)

// App encapsulates application dependencies
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	weatherService weather.Service
	rasterizer     *raster.Rasterizer
	timezones      timezone.Service
	now            func() time.Time

	router *gin.Engine
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:            cfg,
		logger:         logger,
		weatherService: weather.NewWeatherService(cfg, logger),
		rasterizer:     raster.NewRasterizer(cfg.Raster.Command, cfg.Raster.Size, cfg.Raster.Density, logger),
		timezones:      timezone.Lazy(),
		now:            time.Now,
	}
}

// configuredLocation returns the location resolved from arguments,
// environment and defaults.
func (app *App) configuredLocation() weather.Location {
	return weather.Location{
		Latitude:  app.cfg.Location.Latitude,
		Longitude: app.cfg.Location.Longitude,
		Timezone:  app.cfg.Location.Timezone,
	}
}

// BuildTicket runs the whole pipeline for location and returns the ESC-POS
// stream. Nothing is written until every step has succeeded.
func (app *App) BuildTicket(ctx context.Context, location weather.Location) ([]byte, error) {
	if err := icons.CheckDir(app.cfg.Icons.Dir); err != nil {
		return nil, err
	}

	forecast, err := app.weatherService.GetTodayForecast(ctx, location)
	if err != nil {
		return nil, err
	}

	svgPath := icons.Path(app.cfg.Icons.Dir, forecast.WeatherCode)
	app.logger.Debug("selected icon", "code", int(forecast.WeatherCode), "icon", svgPath)

	pngPath, err := app.rasterizer.Rasterize(ctx, svgPath)
	if err != nil {
		return nil, err
	}

	// EncodeFile removes pngPath on every path
	image, err := escpos.EncodeFile(pngPath)
	if err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}

	tzName := forecast.Timezone
	if tzName == "" {
		tzName = location.Timezone
	}
	loc := timezone.ResolveLocation(app.timezones, tzName, location.Latitude, location.Longitude)

	var buf bytes.Buffer
	err = ticket.Write(&buf, ticket.Ticket{
		Forecast:   *forecast,
		Image:      image,
		Date:       app.now().In(loc),
		UpsideDown: app.cfg.Printer.UpsideDown,
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// PrintTicket writes the ticket for the configured location to w.
func (app *App) PrintTicket(ctx context.Context, w io.Writer) error {
	data, err := app.BuildTicket(ctx, app.configuredLocation())
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write ticket: %w", err)
	}

	app.logger.Debug("ticket written", "bytes", len(data))
	return nil
}

// DownloadIcons fetches the icon set into the configured directory. Files
// that fail to download are logged and skipped.
func (app *App) DownloadIcons(ctx context.Context) error {
	d := icons.NewDownloader(app.cfg.Icons.BaseURL, app.cfg.Icons.RateLimit, app.logger)

	report, err := d.Download(ctx, app.cfg.Icons.Dir, icons.DownloadList())
	if err != nil {
		return err
	}

	if len(report.Failed) > 0 {
		app.logger.Warn("some icons could not be downloaded", "icons", report.Failed)
	}
	return nil
}

// fileExists is used by the ticket server to report a missing icon set
// before the first request.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
