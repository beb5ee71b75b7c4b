package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/service"
	appmw "FarmPulse/internal/middleware"
	"FarmPulse/internal/service/predictor"
	"FarmPulse/internal/usecase"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

// AnalyticsHandler serves record submission and the analytics queries.
type AnalyticsHandler struct {
	predictor service.MarketPredictor
	agg       *usecase.AnalyticsAggregator
	verifier  appmw.TokenVerifier
	logger    *applogger.Logger
}

func NewAnalyticsHandler(p service.MarketPredictor, agg *usecase.AnalyticsAggregator, verifier appmw.TokenVerifier, logger *applogger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{predictor: p, agg: agg, verifier: verifier, logger: logger}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", appmw.RequireAuth(h.verifier))
	g.POST("/records", h.AddRecord)
	g.DELETE("/records", h.ClearRecords)
	g.GET("/analytics", h.Analytics)
	g.GET("/analytics/history", h.History)
	g.GET("/analytics/forecast", h.Forecast)
}

func (h *AnalyticsHandler) AddRecord(c echo.Context) error {
	req := &models.AddRecordRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	records, err := h.predictor.AddRecord(c.Request().Context(), models.RecordInput{
		UserID:        appmw.UserKey(c),
		MarketPrice:   req.MarketPrice,
		HarvestAmount: req.HarvestAmount,
		TotalCost:     req.TotalCost,
		TotalRevenue:  req.TotalRevenue,
		NetProfit:     req.NetProfit,
	})
	if err != nil {
		h.logger.Error("add record failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not save record"))
	}
	return xhttp.CreatedResponse(c, map[string]interface{}{
		"message":       "Data successfully added to analysis",
		"total_records": len(records),
	})
}

func (h *AnalyticsHandler) ClearRecords(c echo.Context) error {
	if err := h.predictor.ClearUserData(c.Request().Context(), appmw.UserKey(c)); err != nil {
		h.logger.Error("clear records failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not clear records"))
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"message": "All your data has been cleared successfully!",
	})
}

func (h *AnalyticsHandler) Analytics(c echo.Context) error {
	page := h.agg.Page(c.Request().Context(), appmw.UserKey(c))
	return xhttp.SuccessResponse(c, page)
}

func (h *AnalyticsHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	points := h.predictor.HistoricalData(c.Request().Context(), appmw.UserKey(c), req.Limit)
	return xhttp.SuccessResponse(c, points)
}

func (h *AnalyticsHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	var payload interface{}
	var err error
	if req.Kind == "profit" {
		payload, err = h.predictor.PredictFutureProfits(ctx, req.Periods)
	} else {
		payload, err = h.predictor.PredictFuturePrices(ctx, req.Periods)
	}
	if err != nil {
		if errors.Is(err, predictor.ErrNotTrained) || errors.Is(err, predictor.ErrNoData) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		h.logger.Error("forecast failed", applogger.String("kind", req.Kind), applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("forecast unavailable"))
	}
	return xhttp.SuccessResponse(c, payload)
}
