package bookings

import (
	"hotelio/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Public availability search
	router.GET("/availability", controller.GetAvailability) // GET /api/v1/availability

	// User routes - authenticated guests manage their own bookings
	userBookings := router.Group("/bookings")
	userBookings.Use(middleware.JWTAuth())
	{
		userBookings.POST("", controller.CreateBooking)            // POST /api/v1/bookings
		userBookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		userBookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}

	userScope := router.Group("/users")
	userScope.Use(middleware.JWTAuth())
	{
		userScope.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}

	// Admin routes - listing and operational transitions
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.GetAllBookings)        // GET /api/v1/admin/bookings
		adminBookings.PUT("/:id/status", controller.UpdateStatus) // PUT /api/v1/admin/bookings/:id/status
	}
}
