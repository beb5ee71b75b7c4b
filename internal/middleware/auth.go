package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	xhttp "FarmPulse/pkg/http"
)

// userIDKey is the echo context key the auth middleware sets.
const userIDKey = "auth.user_id"

// TokenVerifier validates a bearer token and returns the account id.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// RequireAuth rejects requests without a valid bearer token and stores
// the account id in the request context for handlers.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("missing bearer token"))
			}
			id, err := verifier.VerifyToken(strings.TrimPrefix(header, prefix))
			if err != nil {
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("invalid or expired token"))
			}
			c.Set(userIDKey, id)
			return next(c)
		}
	}
}

// UserID returns the authenticated account id, or 0 outside RequireAuth.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// UserKey is the string form of the account id used to key market
// records in the shared store.
func UserKey(c echo.Context) string {
	return strconv.FormatInt(UserID(c), 10)
}
