package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers matchmaking routes. All of them require
// authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	mm := g.Group("/matchmaking")
	mm.Use(authMiddleware)
	{
		mm.GET("/players", h.SearchPlayers)
		mm.POST("/requests", h.SendRequest)
		mm.GET("/requests", h.ListRequests)
		mm.POST("/requests/:id/accept", h.Accept)
		mm.POST("/requests/:id/reject", h.Reject)
	}
}
