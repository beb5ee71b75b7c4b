package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	appmw "FarmPulse/internal/middleware"
	authsvc "FarmPulse/internal/service/auth"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/util"
)

// AuthHandler serves account signup, login, profile and password change.
type AuthHandler struct {
	auth     *authsvc.Service
	logger   *applogger.Logger
	timezone string
}

func NewAuthHandler(auth *authsvc.Service, logger *applogger.Logger, timezone string) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger, timezone: timezone}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)

	protected := g.Group("", appmw.RequireAuth(h.auth))
	protected.GET("/profile", h.Profile)
	protected.POST("/password", h.ChangePassword)
}

type authPayload struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	req := &models.SignupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	user, token, err := h.auth.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return xhttp.AppErrorResponse(c, xhttp.ConflictError("username or email already registered"))
		}
		h.logger.Error("signup failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not create account"))
	}
	return xhttp.CreatedResponse(c, authPayload{Token: token, Profile: h.profileOf(user)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	req := &models.LoginRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("invalid username or password"))
		case errors.Is(err, authsvc.ErrTooManyAttempts):
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many login attempts, try again later"))
		default:
			h.logger.Error("login failed", applogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("could not log in"))
		}
	}
	return xhttp.SuccessResponse(c, authPayload{Token: token, Profile: h.profileOf(user)})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := h.auth.UserByID(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("account no longer exists"))
		}
		h.logger.Error("profile lookup failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not load profile"))
	}
	return xhttp.SuccessResponse(c, h.profileOf(user))
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	req := &models.ChangePasswordRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	err := h.auth.ChangePassword(c.Request().Context(), appmw.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("current password is incorrect"))
		}
		if errors.Is(err, authsvc.ErrSamePassword) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		h.logger.Error("password change failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not update password"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"message": "Password updated successfully!"})
}

func (h *AuthHandler) profileOf(user *models.User) models.Profile {
	return models.Profile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Greeting: util.Greeting(h.timezone, time.Now()),
	}
}
