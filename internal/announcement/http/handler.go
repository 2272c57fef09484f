package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/announcement"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
)

type Handler struct {
	service announcement.Service
}

func NewHandler(service announcement.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	list, total, err := h.service.List(c.Request.Context(), announcement.Filter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list announcements"})
		return
	}

	items := make([]AnnouncementResponse, len(list))
	for i, a := range list {
		items[i] = NewAnnouncementResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get announcement"})
		return
	}

	c.JSON(http.StatusOK, NewAnnouncementResponse(a))
}

// Create publishes a new announcement. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), announcement.CreateRequest{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, announcement.ErrTitleRequired),
			errors.Is(err, announcement.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create announcement"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewAnnouncementResponse(a))
}

// Update edits an announcement. Admin only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, announcement.UpdateRequest{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, announcement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		case errors.Is(err, announcement.ErrTitleRequired),
			errors.Is(err, announcement.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update announcement"})
		}
		return
	}

	c.JSON(http.StatusOK, NewAnnouncementResponse(a))
}

// Delete removes an announcement. Admin only.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete announcement"})
		return
	}

	c.Status(http.StatusNoContent)
}
