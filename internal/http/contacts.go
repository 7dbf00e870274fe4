package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jmehdipour/phone-canon/internal/http/middleware"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmehdipour/phone-canon/internal/service/contacts"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ContactStore is the part of contacts.Service the handlers need.
type ContactStore interface {
	Save(ctx context.Context, clientID int64, in model.RawContact) (model.Contact, bool, error)
	Lookup(ctx context.Context, clientID int64, raw, code string) (*model.Contact, error)
}

type saveContactReq struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

func saveContactHandler(store ContactStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID, ok := middleware.ClientIDFromCtx(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}

		var req saveContactReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if len(req.Name) > 255 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name too long"})
		}

		contact, created, err := store.Save(c.Request().Context(), clientID, model.RawContact{
			Name:        req.Name,
			Phone:       req.Phone,
			CountryCode: req.CountryCode,
		})
		if err != nil {
			if errors.Is(err, contacts.ErrInvalidPhone) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}

			log.Errorf("save contact failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return c.JSON(status, map[string]any{
			"created": created,
			"contact": contact,
		})
	}
}

func lookupContactHandler(store ContactStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID, ok := middleware.ClientIDFromCtx(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}

		raw := strings.TrimSpace(c.QueryParam("phone"))
		if raw == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "phone is required"})
		}

		contact, err := store.Lookup(c.Request().Context(), clientID, raw, c.QueryParam("country_code"))
		switch {
		case errors.Is(err, contacts.ErrInvalidPhone):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, contacts.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		case err != nil:
			log.Errorf("lookup contact failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		return c.JSON(http.StatusOK, contact)
	}
}
