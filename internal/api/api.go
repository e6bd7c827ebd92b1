package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/holasaidlola/shop-analytics/internal/api/controller"
	"github.com/holasaidlola/shop-analytics/internal/pkg/config"
	"github.com/holasaidlola/shop-analytics/internal/service/analytics"
	"github.com/holasaidlola/shop-analytics/internal/service/orders"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(cfg *config.Config, ordersService *orders.Service, analyticsService *analytics.Service) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.OFF)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type"},
	}))

	cntrl := controller.NewController(ordersService, analyticsService)

	api := svc.router.Group("/api/v1")

	ordersGroup := api.Group("/orders")
	ordersGroup.POST("/refresh", cntrl.RefreshOrders)
	ordersGroup.GET("/snapshot", cntrl.GetOrdersSnapshot)

	locations := api.Group("/locations")
	locations.GET("/list", cntrl.GetLocations)

	charts := api.Group("/charts")
	charts.GET("", cntrl.GetCharts)

	return svc, nil
}
