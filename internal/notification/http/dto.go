package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/notification"
)

type ListNotificationsRequest struct {
	Page       int   `form:"page"`
	Limit      int   `form:"limit"`
	UnreadOnly *bool `form:"unreadOnly"`
}

func (r *ListNotificationsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 50
	}
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	SenderID  *string        `json:"senderId,omitempty"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"isRead"`
	CreatedAt time.Time      `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		SenderID:  n.SenderID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
