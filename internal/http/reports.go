package http

import (
	"net/http"
	"strconv"

	"github.com/jmehdipour/phone-canon/internal/http/middleware"
	"github.com/jmehdipour/phone-canon/internal/phone"
	"github.com/jmehdipour/phone-canon/internal/repository"
	echo "github.com/labstack/echo/v4"
)

func listContactsHandler(chRepo repository.CHContactsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID, ok := middleware.ClientIDFromCtx(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}

		limit := 50
		offset := 0
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}
		if v := c.QueryParam("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		// "+60", " 6 0" and "60" all filter on the stored "60"
		var code string
		if raw := c.QueryParam("country_code"); raw != "" {
			var n phone.Number
			n.SetCountryCode(raw)
			code, _ = n.CountryCode()
		}

		rows, err := chRepo.ListByClient(c.Request().Context(), clientID, code, limit, offset)
		if err != nil {
			c.Logger().Errorf("clickhouse list failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"limit":   limit,
			"offset":  offset,
			"count":   len(rows),
			"results": rows,
		})
	}
}
