package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers slot routes. Availability is public; managing
// slots requires the court-owner role, with ownership of the specific court
// enforced in the service.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	g.GET("/courts/:id/slots", h.AvailableSlots)
	g.POST("/courts/:id/slots", authMiddleware, ownerMiddleware, h.CreateSlots)
	g.DELETE("/slots/:id", authMiddleware, ownerMiddleware, h.Delete)
}
