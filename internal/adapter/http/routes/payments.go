package routes

import (
	"cardpay/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing     = "/ping"
	PathPayments = "/payments"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("", paymentHandler.ListPayments)
		payments.GET("/options", paymentHandler.GetOptions)
		payments.GET("/:id", paymentHandler.GetPayment)
	}
}
