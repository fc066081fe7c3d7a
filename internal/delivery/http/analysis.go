package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quantlab/internal/dto"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	base.POST("/calculate", h.calculate)
}

func (h *HttpAPIHandler) calculate(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CalculateRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.AnalysisService.Calculate(ctx, *req)
	if err != nil {
		// All pipeline failures are surfaced as a single structured client
		// error; internal detail never leaks past the message.
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	return c.JSON(http.StatusOK, result)
}
