package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/courtwala/courtwala-backend/internal/notification"
)

type CreateRequest struct {
	PlayerID      string
	CourtID       string
	Date          time.Time
	StartTime     string // "HH:mm", zero-padded
	EndTime       string // "HH:mm", zero-padded
	NeedsOpponent bool
	SlotID        *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id, viewerID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	Approve(ctx context.Context, id, ownerID string) (*Booking, error)
	Reject(ctx context.Context, id, ownerID string) (*Booking, error)
	Cancel(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error)

	// Complete moves a confirmed booking to completed. Intended for a
	// scheduled job running after the booked time has passed.
	Complete(ctx context.Context, id string) (*Booking, error)

	// SetOpponent fills the opponent seat on an open booking. Used by the
	// matchmaking accept flow.
	SetOpponent(ctx context.Context, id, opponentID string) (*Booking, error)

	OwnerStats(ctx context.Context, ownerID string) ([]StatusCount, error)
}

type service struct {
	repo     Repository
	notifier notification.Dispatcher
	now      func() time.Time
}

func NewService(repo Repository, notifier notification.Dispatcher) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// normalizeDate truncates to midnight UTC so equality on the date column is
// exact regardless of the client's time component.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidTimeRange
	}

	date := normalizeDate(req.Date)
	if date.Before(normalizeDate(s.now())) {
		return nil, ErrDateInPast
	}

	b := &Booking{
		CourtID:       req.CourtID,
		PlayerID:      req.PlayerID,
		SlotID:        req.SlotID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		NeedsOpponent: req.NeedsOpponent,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: b.OwnerID,
		SenderID:   b.PlayerID,
		Type:       notification.TypeBookingRequested,
		Title:      "New booking request",
		Message:    fmt.Sprintf("%s on %s from %s to %s", b.CourtName, b.Date.Format("2006-01-02"), b.StartTime, b.EndTime),
		Data:       map[string]any{"bookingId": b.ID, "courtId": b.CourtID},
	})

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, viewerID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.PlayerID != viewerID && b.OwnerID != viewerID && !isOpponent(b, viewerID) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func isOpponent(b *Booking, userID string) bool {
	return b.OpponentID != nil && *b.OpponentID == userID
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Approve(ctx context.Context, id, ownerID string) (*Booking, error) {
	return s.ownerTransition(ctx, id, ownerID, StatusConfirmed,
		notification.TypeBookingApproved, "Booking confirmed")
}

func (s *service) Reject(ctx context.Context, id, ownerID string) (*Booking, error) {
	return s.ownerTransition(ctx, id, ownerID, StatusRejected,
		notification.TypeBookingRejected, "Booking rejected")
}

// ownerTransition implements the approve/reject pair: both move a pending
// booking on behalf of the court owner and notify the player.
func (s *service) ownerTransition(ctx context.Context, id, ownerID string, to Status, notifType notification.Type, title string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}

	changed, err := s.repo.UpdateStatus(ctx, id, TransitionSources(to), to)
	if err != nil {
		return nil, err
	}
	if !changed {
		// The row existed a moment ago, so a zero-row update means the
		// status moved on under us.
		return nil, ErrInvalidTransition
	}
	b.Status = to

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: b.PlayerID,
		SenderID:   ownerID,
		Type:       notifType,
		Title:      title,
		Message:    fmt.Sprintf("%s on %s from %s to %s", b.CourtName, b.Date.Format("2006-01-02"), b.StartTime, b.EndTime),
		Data:       map[string]any{"bookingId": b.ID, "courtId": b.CourtID},
	})

	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isPlayer := b.PlayerID == actorID
	isOwner := b.OwnerID == actorID
	if !isAdmin && !isPlayer && !isOwner {
		return nil, ErrPermissionDenied
	}

	changed, err := s.repo.UpdateStatus(ctx, id, TransitionSources(StatusCancelled), StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidTransition
	}
	b.Status = StatusCancelled

	// Tell the other side. An admin cancelling counts as the court side, so
	// the player hears about it.
	receiverID := b.OwnerID
	if !isPlayer {
		receiverID = b.PlayerID
	}

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: receiverID,
		SenderID:   actorID,
		Type:       notification.TypeBookingCancelled,
		Title:      "Booking cancelled",
		Message:    fmt.Sprintf("%s on %s from %s to %s", b.CourtName, b.Date.Format("2006-01-02"), b.StartTime, b.EndTime),
		Data:       map[string]any{"bookingId": b.ID, "courtId": b.CourtID},
	})

	return b, nil
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.repo.UpdateStatus(ctx, id, TransitionSources(StatusCompleted), StatusCompleted)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidTransition
	}
	b.Status = StatusCompleted
	return b, nil
}

func (s *service) SetOpponent(ctx context.Context, id, opponentID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.PlayerID == opponentID {
		return nil, ErrPermissionDenied
	}

	changed, err := s.repo.SetOpponent(ctx, id, opponentID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrOpponentTaken
	}

	b.OpponentID = &opponentID
	b.NeedsOpponent = false
	return b, nil
}

func (s *service) OwnerStats(ctx context.Context, ownerID string) ([]StatusCount, error) {
	return s.repo.StatsByOwner(ctx, ownerID)
}
