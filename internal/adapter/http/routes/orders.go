package routes

import (
	"tumblecup_admin/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders    = "/orders"
	PathAnalytics = "/analytics"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, analyticsHandler *handlers.AnalyticsHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/export", orderHandler.ExportOrders)
		orders.PATCH("/batch", orderHandler.BatchUpdate)
		orders.PATCH("/:id/status", orderHandler.UpdateStatus)
		orders.PATCH("/:id/payment-status", orderHandler.UpdatePaymentStatus)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
	}

	analytics := rg.Group(PathAnalytics)
	{
		analytics.GET("", analyticsHandler.GetAnalytics)
		analytics.GET("/export", analyticsHandler.ExportAnalytics)
	}
}
