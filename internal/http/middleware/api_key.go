package middleware

import (
	"net/http"
	"strings"

	"github.com/jmehdipour/phone-canon/internal/repository"
	echo "github.com/labstack/echo/v4"
)

const (
	ctxClientID  = "client_id"
	ctxClientRPS = "client_rps"
)

// ClientIDFromCtx extracts authenticated client_id set by APIKeyMiddleware.
func ClientIDFromCtx(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxClientID).(int64)
	return id, ok && id > 0
}

// SetClient stores the authenticated client on the context.
func SetClient(c echo.Context, id int64, rps *int) {
	c.Set(ctxClientID, id)
	if rps != nil {
		c.Set(ctxClientRPS, *rps)
	}
}

// APIKeyMiddleware authenticates requests using X-API-Key header.
// On success it stores client_id in context; suspended clients are rejected.
func APIKeyMiddleware(clients repository.ClientsRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
			if key == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing api key"})
			}
			cl, err := clients.GetByAPIKey(c.Request().Context(), key)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth error"})
			}
			if cl == nil || !cl.Active() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			}
			SetClient(c, cl.ID, cl.RateLimitRPS)
			return next(c)
		}
	}
}
