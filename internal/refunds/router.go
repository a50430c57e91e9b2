package refunds

import (
	"hotelio/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRefundRoutes(router *gin.RouterGroup, controller Controller) {
	refundRoutes := router.Group("/bookings")
	refundRoutes.Use(middleware.JWTAuth())
	{
		refundRoutes.POST("/:id/refund/request", controller.RequestRefund) // POST /api/v1/bookings/:id/refund/request
		refundRoutes.GET("/:id/refund", controller.GetRefundStatus)        // GET /api/v1/bookings/:id/refund

		// Decision endpoint shares the booking path but is admin-only
		refundRoutes.PUT("/:id/refund/status", middleware.RequireAdmin(), controller.DecideRefund) // PUT /api/v1/bookings/:id/refund/status
	}
}
