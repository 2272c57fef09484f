package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/notification"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

// List returns the authenticated user's notifications, newest first.
func (h *Handler) List(c *gin.Context) {
	var req ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	var isRead *bool
	if req.UnreadOnly != nil && *req.UnreadOnly {
		f := false
		isRead = &f
	}

	filter := notification.Filter{
		ReceiverID: auth.GetUserID(c),
		IsRead:     isRead,
		Page:       req.Page,
		PageSize:   req.Limit,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]NotificationResponse, len(items))
	for i, n := range items {
		out[i] = NewNotificationResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(out, req.Page, req.Limit, total))
}

// UnreadCount returns the number of unread notifications for badge display.
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead marks a single notification as read. The lookup is scoped to the
// authenticated receiver so users cannot touch each other's notifications.
func (h *Handler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	err := h.service.MarkRead(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllRead marks every unread notification of the authenticated user read.
func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), auth.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}

	c.Status(http.StatusNoContent)
}
