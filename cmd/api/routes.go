package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/geonet-geomatica/Repositorio/internal/middleware"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Station endpoints
	app.router.GET("/get_all_weather_geojson", app.handleGetAllWeatherGeoJSON)
	app.router.GET("/wfs", app.handleWFS)

	// Prometheus metrics
	app.router.GET("/metrics", middleware.MetricsEndpoint(app.metrics))

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
