// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"hotelio/internal/bookings"
	"hotelio/internal/catalog"
	"hotelio/internal/notifications"
	"hotelio/internal/payments"
	"hotelio/internal/refunds"
	"hotelio/internal/shared/config"
	"hotelio/internal/shared/database"
	"hotelio/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Service

	// Shared across route groups
	cacheService   cache.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Service) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)

		// Booking routes must come before payments and refunds so the
		// shared booking service is available for injection
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupRefundRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "hotelio-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "hotelio-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupCatalogRoutes configures resource catalog routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, r.config.Redis.CatalogCacheTTL)
	if r.cacheService != nil {
		catalogService.SetCacheService(r.cacheService)
	}
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupBookingRoutes configures booking and availability routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, catalogRepo, r.notifier, r.config.Booking.DepositPercent)
	bookingController := bookings.NewController(bookingService)

	// Store booking service for payments and refunds wiring
	r.bookingService = bookingService

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupPaymentRoutes configures payment order and verification routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	provider := payments.NewRazorpayProvider(r.config.Razorpay.KeyID, r.config.Razorpay.KeySecret)
	verifier := payments.NewVerifier(r.config.Razorpay.KeySecret)
	paymentService := payments.NewService(provider, verifier, r.bookingService, r.config.Razorpay.KeyID, r.config.Razorpay.Currency)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}

// setupRefundRoutes configures refund request and decision routes
func (r *Router) setupRefundRoutes(rg *gin.RouterGroup) {
	provider := payments.NewRazorpayProvider(r.config.Razorpay.KeyID, r.config.Razorpay.KeySecret)
	refundRepo := refunds.NewRepository(r.db.GetPostgreSQL())
	refundService := refunds.NewService(refundRepo, r.bookingService, provider, r.notifier)
	refundController := refunds.NewController(refundService)

	refunds.SetupRefundRoutes(rg, refundController)
}
