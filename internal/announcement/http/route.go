package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers announcement routes: public reads, admin writes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	public := g.Group("/announcements")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	admin := g.Group("/admin/announcements")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
