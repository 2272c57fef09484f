package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Every route requires
// authentication; approve/reject are additionally gated in the service by
// court ownership.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/approve", h.Approve)
		bookings.POST("/:id/reject", h.Reject)
		bookings.POST("/:id/cancel", h.Cancel)
	}

	owner := g.Group("/owner/bookings")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.GET("/stats", h.OwnerStats)
	}
}
