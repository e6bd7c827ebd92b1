package controller

import (
	"github.com/holasaidlola/shop-analytics/internal/service/analytics"
	"github.com/holasaidlola/shop-analytics/internal/service/orders"
)

type Controller struct {
	orders    *orders.Service
	analytics *analytics.Service
}

func NewController(ordersService *orders.Service, analyticsService *analytics.Service) *Controller {
	return &Controller{orders: ordersService, analytics: analyticsService}
}
