package notification

import (
	"context"
	"strings"
)

// CreateRequest carries the fields for a new notification.
type CreateRequest struct {
	ReceiverID string
	SenderID   string // optional; empty means system-generated
	Type       Type
	Title      string
	Message    string
	Data       map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Notification, error)
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, receiverID string) error
	MarkAllRead(ctx context.Context, receiverID string) error
	UnreadCount(ctx context.Context, receiverID string) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Notification, error) {
	var senderID *string
	if strings.TrimSpace(req.SenderID) != "" {
		id := req.SenderID
		senderID = &id
	}

	n := &Notification{
		ReceiverID: req.ReceiverID,
		SenderID:   senderID,
		Type:       req.Type,
		Title:      req.Title,
		Message:    req.Message,
		Data:       req.Data,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, id, receiverID string) error {
	return s.repo.MarkRead(ctx, id, receiverID)
}

func (s *service) MarkAllRead(ctx context.Context, receiverID string) error {
	return s.repo.MarkAllRead(ctx, receiverID)
}

func (s *service) UnreadCount(ctx context.Context, receiverID string) (int, error) {
	return s.repo.UnreadCount(ctx, receiverID)
}
