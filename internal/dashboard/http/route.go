package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the dashboard endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/admin/dashboard", authMiddleware, adminMiddleware, h.AdminOverview)
	g.GET("/owner/dashboard", authMiddleware, ownerMiddleware, h.OwnerOverview)
}
