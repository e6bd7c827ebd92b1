package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RefreshOrders rebuilds the order table from the source. Returns 409 when
// a refresh is already running.
func (c *Controller) RefreshOrders(ctx echo.Context) error {
	result, err := c.orders.Refresh(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetOrdersSnapshot serves the serialized order table plus the distinct
// locations for the UI's selector.
func (c *Controller) GetOrdersSnapshot(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.orders.Snapshot(ctx.Request().Context()))
}
