package api

import (
	"github.com/labstack/echo/v4"

	"FarmPulse/internal/domain/models"
	appmw "FarmPulse/internal/middleware"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

// SupportHandler accepts support messages. There is no ticketing
// backend; messages are logged for the operators to pick up.
type SupportHandler struct {
	verifier appmw.TokenVerifier
	logger   *applogger.Logger
}

func NewSupportHandler(verifier appmw.TokenVerifier, logger *applogger.Logger) *SupportHandler {
	return &SupportHandler{verifier: verifier, logger: logger}
}

func (h *SupportHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/support", appmw.RequireAuth(h.verifier))
	g.POST("", h.Submit)
}

func (h *SupportHandler) Submit(c echo.Context) error {
	req := &models.SupportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	h.logger.Info("support message received",
		applogger.String("name", req.Name),
		applogger.String("email", req.Email),
		applogger.Int("message_len", len(req.Message)))
	return xhttp.SuccessResponse(c, map[string]string{
		"message": "Your message has been sent!",
	})
}
