package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth, profile and admin user routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
	}

	profile := g.Group("/profile")
	profile.Use(authMiddleware)
	{
		profile.PATCH("", h.UpdateProfile)
		profile.POST("/picture", h.UploadProfilePicture)
	}

	admin := g.Group("/admin/users")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.ListUsers)
		admin.PATCH("/:id/status", h.UpdateUserStatus)
	}
}
