package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	"FarmPulse/internal/domain/service"
	appmw "FarmPulse/internal/middleware"
	authsvc "FarmPulse/internal/service/auth"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

// ReportsHandler serves the downloadable cost-profit analysis PDF.
type ReportsHandler struct {
	renderer service.ReportRenderer
	auth     *authsvc.Service
	logger   *applogger.Logger
}

func NewReportsHandler(renderer service.ReportRenderer, auth *authsvc.Service, logger *applogger.Logger) *ReportsHandler {
	return &ReportsHandler{renderer: renderer, auth: auth, logger: logger}
}

func (h *ReportsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/analysis", appmw.RequireAuth(h.auth))
	g.POST("/report", h.Generate)
}

func (h *ReportsHandler) Generate(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	user, err := h.auth.UserByID(ctx, appmw.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("account no longer exists"))
		}
		h.logger.Error("report user lookup failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not generate report"))
	}

	body, err := h.renderer.Render(ctx, user.Username, *req)
	if err != nil {
		h.logger.Error("report rendering failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not generate report"))
	}
	filename := fmt.Sprintf("cost_profit_analysis_%s.pdf", time.Now().Format("20060102_150405"))
	return xhttp.FileResponse(c, filename, "application/pdf", body)
}
