package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers public, owner and admin court routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	public := g.Group("/courts")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	// === Owner Routes ===
	owner := g.Group("/owner/courts")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.GET("", h.OwnerCourts)
		owner.POST("", h.Create)
		owner.PATCH("/:id", h.Update)
		owner.DELETE("/:id", h.Delete)
		owner.POST("/:id/images", h.UploadImage)
	}

	// === Admin Routes ===
	admin := g.Group("/admin/courts")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.AdminList)
		admin.PATCH("/:id/status", h.Review)
	}
}
