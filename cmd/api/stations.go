package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geonet-geomatica/Repositorio/internal/geojson"
	"github.com/geonet-geomatica/Repositorio/internal/middleware"
	"github.com/geonet-geomatica/Repositorio/internal/wfs"
)

// statusClientClosedRequest is nginx's status for a client that disconnected
// before the response was written
const statusClientClosedRequest = 499

// handleGetAllWeatherGeoJSON godoc
// @Summary All stations as GeoJSON
// @Description Fetch every configured station and return the ones that answered as a GeoJSON FeatureCollection of Points
// @Tags stations
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /get_all_weather_geojson [get]
func (app *App) handleGetAllWeatherGeoJSON(c *gin.Context) {
	fc, err := app.stationService.Aggregate(c.Request.Context())
	if err != nil {
		app.abortAggregation(c, err)
		return
	}

	data, err := geojson.Encode(fc)
	if err != nil {
		app.logger.Error("failed to encode GeoJSON", "error", err, "requestId", middleware.GetRequestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode features"})
		return
	}

	c.Data(http.StatusOK, geojson.ContentType, data)
}

// handleWFS godoc
// @Summary WFS 1.1.0 endpoint
// @Description GetCapabilities, DescribeFeatureType and GetFeature for the Estaciones feature type. Parameter names and values are case-insensitive.
// @Tags wfs
// @Produce xml
// @Produce plain
// @Param SERVICE query string true "Must be WFS" example(WFS)
// @Param REQUEST query string true "GetCapabilities, DescribeFeatureType or GetFeature" example(GetCapabilities)
// @Param TYPENAME query string false "Feature type, only Estaciones is served" example(Estaciones)
// @Param SRSNAME query string false "Spatial reference system, only EPSG:4326 is served" example(EPSG:4326)
// @Success 200 {string} string "XML document"
// @Failure 400 {string} string "invalid WFS request"
// @Router /wfs [get]
func (app *App) handleWFS(c *gin.Context) {
	req := wfs.ParseRequest(c.Request.URL.Query())

	resp, err := app.dispatcher.Handle(c.Request.Context(), req, app.wfsBaseURL(c))
	if err != nil {
		app.abortAggregation(c, err)
		return
	}

	c.Data(resp.Status, resp.ContentType, resp.Body)
}

// abortAggregation ends a request whose aggregation was cancelled
func (app *App) abortAggregation(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		app.logger.Warn("aggregation timed out", "error", err, "requestId", middleware.GetRequestID(c))
		c.AbortWithStatus(http.StatusGatewayTimeout)
		return
	}
	app.logger.Info("client went away during aggregation", "error", err, "requestId", middleware.GetRequestID(c))
	c.AbortWithStatus(statusClientClosedRequest)
}

// wfsBaseURL returns the externally visible URL of the WFS endpoint, used
// for the operation links of the capabilities document.
func (app *App) wfsBaseURL(c *gin.Context) string {
	if app.cfg.Server.PublicURL != "" {
		return strings.TrimRight(app.cfg.Server.PublicURL, "/") + "/wfs"
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}

	return scheme + "://" + host + "/wfs"
}
