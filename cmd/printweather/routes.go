package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const requestIDHeader = "X-Request-ID"

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	app.router.Use(app.requestID())

	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Ticket endpoint
	app.router.GET("/ticket", app.handleGetTicket)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}

// requestID tags every request with an X-Request-ID, reusing the caller's.
func (app *App) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
			c.Request.Header.Set(requestIDHeader, reqID)
		}
		c.Header(requestIDHeader, reqID)
		c.Set("request_id", reqID)
		c.Next()
	}
}
