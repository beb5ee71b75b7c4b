package api

import (
	"github.com/labstack/echo/v4"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/service"
	appmw "FarmPulse/internal/middleware"
	xhttp "FarmPulse/pkg/http"
)

// WeatherHandler serves conditions for the supported city list.
type WeatherHandler struct {
	weather  service.WeatherService
	verifier appmw.TokenVerifier
}

func NewWeatherHandler(weather service.WeatherService, verifier appmw.TokenVerifier) *WeatherHandler {
	return &WeatherHandler{weather: weather, verifier: verifier}
}

func (h *WeatherHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/weather", appmw.RequireAuth(h.verifier))
	g.GET("", h.Lookup)
	g.GET("/cities", h.Cities)
}

// Lookup always answers 200; provider problems show up as an
// unavailable report with a message for the page to render.
func (h *WeatherHandler) Lookup(c echo.Context) error {
	req := &models.WeatherRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	report := h.weather.Lookup(c.Request().Context(), req.City)
	return xhttp.SuccessResponse(c, report)
}

func (h *WeatherHandler) Cities(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.weather.Cities())
}
