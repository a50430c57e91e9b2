package catalog

import (
	"hotelio/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the catalog
	publicCatalog := router.Group("/catalog")
	{
		publicCatalog.GET("", controller.GetAllResources) // GET /api/v1/catalog - Browse all resources
		publicCatalog.GET("/:id", controller.GetResource) // GET /api/v1/catalog/:id - Resource details
	}

	// Admin routes - only admins manage the catalog
	adminCatalog := router.Group("/admin/catalog")
	adminCatalog.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminCatalog.POST("", controller.CreateResource)       // POST /api/v1/admin/catalog - Create resource
		adminCatalog.PUT("/:id", controller.UpdateResource)    // PUT /api/v1/admin/catalog/:id - Update resource
		adminCatalog.DELETE("/:id", controller.DeleteResource) // DELETE /api/v1/admin/catalog/:id - Delete resource
	}
}
