package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the notification inbox routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	notifications := g.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.PATCH("/read-all", h.MarkAllRead)
	}
}
