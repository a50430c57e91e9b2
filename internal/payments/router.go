package payments

import (
	"hotelio/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Use(middleware.JWTAuth())
	{
		paymentRoutes.POST("/order", controller.CreateOrder) // POST /api/v1/payments/order
	}

	bookingPayments := router.Group("/bookings")
	bookingPayments.Use(middleware.JWTAuth())
	{
		bookingPayments.PUT("/:id/payment", controller.VerifyPayment) // PUT /api/v1/bookings/:id/payment
	}
}
