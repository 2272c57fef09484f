package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers report routes: filing and reviewing.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	reports := g.Group("/reports")
	reports.Use(authMiddleware)
	{
		reports.POST("", h.Create)
		reports.GET("/mine", h.MyReports)
	}

	admin := g.Group("/admin/reports")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}
