package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quantlab/internal/dto"
)

func (h *HttpAPIHandler) SetupFinancials(base *echo.Group) {
	base.GET("/financials/:ticker", h.getFinancials)
}

// getFinancials serves fundamentals for a ticker. Cache-busting query
// parameters are accepted and ignored; caching is handled server-side.
func (h *HttpAPIHandler) getFinancials(c echo.Context) error {
	ctx := c.Request().Context()

	ticker := c.Param("ticker")
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("ticker is required"))
	}

	result, err := h.service.FinancialsService.GetFinancials(ctx, ticker)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	return c.JSON(http.StatusOK, result)
}
