package main

import (
	"errors"
	"net/http"

	"printweather/internal/providers/openmeteo"
	"printweather/internal/timezone"
	"printweather/internal/weather"

	"github.com/gin-gonic/gin"
)

// GetTicketInput defines the optional query parameters of the ticket
// endpoint. Each one present overrides the configured value.
type GetTicketInput struct {
	Latitude  string `form:"latitude"`
	Longitude string `form:"longitude"`
	Timezone  string `form:"timezone"`
}

// ErrorResponse is the body of every failed ticket request
type ErrorResponse struct {
	Error string `json:"error" example:"error from weather API (status 400): Invalid timezone"`
}

// Handler returns the ticket server's HTTP handler, building it on first use.
func (app *App) Handler() http.Handler {
	if app.router == nil {
		gin.SetMode(app.cfg.Server.GinMode)

		app.router = gin.New()
		app.router.Use(gin.Recovery())
		app.registerRoutes()
	}
	return app.router
}

// Run starts the ticket server
func (app *App) Run(addr string) error {
	if !fileExists(app.cfg.Icons.Dir) {
		app.logger.Warn("weather-icons directory not found, tickets will fail until icons are installed",
			"dir", app.cfg.Icons.Dir,
		)
	}

	app.Handler()
	return app.router.Run(addr)
}

// handleGetTicket godoc
// @Summary Weather ticket
// @Description Returns today's ticket as an ESC-POS stream. Query values override the configured location. Without a timezone the zone is looked up from the coordinates.
// @Tags ticket
// @Produce octet-stream
// @Param latitude query string false "Latitude"
// @Param longitude query string false "Longitude"
// @Param timezone query string false "IANA timezone"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /ticket [get]
func (app *App) handleGetTicket(c *gin.Context) {
	var input GetTicketInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	location := app.configuredLocation()
	if input.Latitude != "" {
		location.Latitude = input.Latitude
	}
	if input.Longitude != "" {
		location.Longitude = input.Longitude
	}
	switch {
	case input.Timezone != "":
		location.Timezone = input.Timezone
	case input.Latitude != "" || input.Longitude != "":
		// The configured zone belongs to the configured place
		location.Timezone = app.lookupTimezone(location)
	}

	data, err := app.BuildTicket(c.Request.Context(), location)
	if err != nil {
		app.logger.Error("failed to build ticket",
			"request_id", c.GetString("request_id"),
			"latitude", location.Latitude,
			"longitude", location.Longitude,
			"error", err,
		)

		var apiErr *openmeteo.APIError
		if errors.As(err, &apiErr) ||
			errors.Is(err, openmeteo.ErrUnexpectedResponse) ||
			errors.Is(err, openmeteo.ErrFetchFailed) {
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

// lookupTimezone finds the zone for location's coordinates, leaving the
// choice to the forecast API when the lookup fails.
func (app *App) lookupTimezone(location weather.Location) string {
	name, err := timezone.LookupName(app.timezones, location.Latitude, location.Longitude)
	if err != nil {
		app.logger.Debug("timezone lookup failed, using auto",
			"latitude", location.Latitude,
			"longitude", location.Longitude,
			"error", err,
		)
		return "auto"
	}
	return name
}
