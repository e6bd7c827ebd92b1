package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetLocations(ctx echo.Context) error {
	type response struct {
		Locations []string `json:"locations"`
	}

	return ctx.JSON(http.StatusOK, response{
		Locations: c.orders.Locations(ctx.Request().Context()),
	})
}
