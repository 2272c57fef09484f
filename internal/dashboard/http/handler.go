package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/dashboard"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

// AdminOverview returns platform-wide counts for the admin dashboard.
func (h *Handler) AdminOverview(c *gin.Context) {
	overview, err := h.service.AdminOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, NewAdminOverviewResponse(overview))
}

// OwnerOverview returns the authenticated owner's business summary.
func (h *Handler) OwnerOverview(c *gin.Context) {
	overview, err := h.service.OwnerOverview(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, NewOwnerOverviewResponse(overview))
}
