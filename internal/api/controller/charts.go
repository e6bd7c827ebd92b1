package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/holasaidlola/shop-analytics/internal/domain"
	"github.com/holasaidlola/shop-analytics/internal/pkg/constants"
	"github.com/holasaidlola/shop-analytics/internal/pkg/utils"
	"github.com/holasaidlola/shop-analytics/internal/service/analytics"
)

type getChartsRequest struct {
	StartDate string `query:"start_date" validate:"required"`
	EndDate   string `query:"end_date" validate:"required"`
	Location  string `query:"location"`
}

// GetCharts recomputes the full chart bundle for the given date range and
// location filter. Both date bounds are inclusive.
func (c *Controller) GetCharts(ctx echo.Context) error {
	var req getChartsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return constants.NewCodedError(http.StatusBadRequest, fmt.Sprintf("parse start_date: %s", err))
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return constants.NewCodedError(http.StatusBadRequest, fmt.Sprintf("parse end_date: %s", err))
	}
	if end.Before(start) {
		return constants.ErrInvalidDateRange
	}

	location := req.Location
	if location == "" {
		location = analytics.LocationAll
	}

	table := c.orders.Table(ctx.Request().Context())
	bundle, err := utils.Measure(ctx.Request().Context(), "generate_charts",
		func(reqCtx context.Context) (*domain.ChartBundle, error) {
			return c.analytics.ChartBundle(reqCtx, table, start, end, location)
		})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bundle)
}

// parseDate accepts either a bare date, as sent by the UI's date picker, or
// a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
