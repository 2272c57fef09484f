package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers tournament routes: public browsing, player
// join/leave, admin management.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	public := g.Group("/tournaments")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	player := g.Group("/tournaments")
	player.Use(authMiddleware)
	{
		player.POST("/:id/join", h.Join)
		player.POST("/:id/leave", h.Leave)
	}

	admin := g.Group("/admin/tournaments")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
