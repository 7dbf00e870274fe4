package http

import (
	"errors"
	"net/http"

	"github.com/jmehdipour/phone-canon/internal/metrics"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmehdipour/phone-canon/internal/phone"
	"github.com/jmehdipour/phone-canon/internal/service/contacts"
	"github.com/labstack/echo/v4"
)

type numberReq struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

type compareReq struct {
	A numberReq `json:"a"`
	B numberReq `json:"b"`
}

func observe(outcome model.Outcome) {
	metrics.NormalizationsTotal.WithLabelValues(model.SourceAPI.String(), outcome.String()).Inc()
}

func invalidPhone(c echo.Context, err error) error {
	if errors.Is(err, phone.ErrInvalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
}

func normalizeHandler(defaultCode string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req numberReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		res, outcome, err := contacts.Canonicalize(req.Phone, req.CountryCode, defaultCode)
		observe(outcome)
		if err != nil {
			return invalidPhone(c, err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

func compareHandler(defaultCode string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req compareReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		a, err := contacts.Parse(req.A.Phone, req.A.CountryCode, defaultCode)
		if err != nil {
			observe(model.OutcomeInvalid)
			return invalidPhone(c, err)
		}
		b, err := contacts.Parse(req.B.Phone, req.B.CountryCode, defaultCode)
		if err != nil {
			observe(model.OutcomeInvalid)
			return invalidPhone(c, err)
		}
		observe(contacts.OutcomeOf(a))
		observe(contacts.OutcomeOf(b))

		return c.JSON(http.StatusOK, map[string]any{
			"equal": phone.Equal(a, b),
			"a":     a.FullNumber(),
			"b":     b.FullNumber(),
		})
	}
}

func countriesHandler(c echo.Context) error {
	table := phone.CountryCodes()
	return c.JSON(http.StatusOK, map[string]any{
		"domestic_prefix_code": phone.DomesticPrefixCode,
		"count":                len(table),
		"countries":            table,
	})
}
