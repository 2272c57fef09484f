package matchmaking

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/notification"
	"github.com/courtwala/courtwala-backend/internal/user"
)

// PlayerSource resolves and searches players. Satisfied by the user service.
type PlayerSource interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context, filter user.Filter) ([]*user.User, int, error)
}

// OpponentSetter fills the opponent seat on a booking. Satisfied by the
// booking service.
type OpponentSetter interface {
	SetOpponent(ctx context.Context, id, opponentID string) (*booking.Booking, error)
}

type SendRequest struct {
	SenderID   string
	ReceiverID string
	BookingID  *string
	Sport      string
	SkillLevel string
	Message    string
}

type SearchFilter struct {
	Search     string
	Sport      string
	SkillLevel string

	Page     int
	PageSize int
}

type Service interface {
	SearchPlayers(ctx context.Context, filter SearchFilter) ([]*user.User, int, error)
	SendRequest(ctx context.Context, req SendRequest) (*MatchRequest, error)
	ListRequests(ctx context.Context, userID string, box Box, page, pageSize int) ([]*MatchRequest, int, error)
	Accept(ctx context.Context, id, receiverID string) (*MatchRequest, error)
	Reject(ctx context.Context, id, receiverID string) (*MatchRequest, error)
}

type service struct {
	repo     Repository
	players  PlayerSource
	bookings OpponentSetter
	notifier notification.Dispatcher
}

func NewService(repo Repository, players PlayerSource, bookings OpponentSetter, notifier notification.Dispatcher) Service {
	return &service{
		repo:     repo,
		players:  players,
		bookings: bookings,
		notifier: notifier,
	}
}

// SearchPlayers lists active players only, whatever the caller asks for.
func (s *service) SearchPlayers(ctx context.Context, filter SearchFilter) ([]*user.User, int, error) {
	return s.players.List(ctx, user.Filter{
		Role:       string(user.RolePlayer),
		Status:     string(user.StatusActive),
		Search:     filter.Search,
		Sport:      filter.Sport,
		SkillLevel: filter.SkillLevel,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
}

func (s *service) SendRequest(ctx context.Context, req SendRequest) (*MatchRequest, error) {
	if req.SenderID == req.ReceiverID {
		return nil, ErrSelfRequest
	}

	receiver, err := s.players.GetByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}
	if receiver.Role != user.RolePlayer || receiver.Status != user.StatusActive {
		return nil, ErrReceiverInactive
	}

	pending, err := s.repo.HasPendingBetween(ctx, req.SenderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	m := &MatchRequest{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		BookingID:  req.BookingID,
		Sport:      req.Sport,
		SkillLevel: req.SkillLevel,
		Message:    req.Message,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: m.ReceiverID,
		SenderID:   m.SenderID,
		Type:       notification.TypeMatchRequest,
		Title:      "New match request",
		Message:    fmt.Sprintf("You have a new %s match request", m.Sport),
		Data:       map[string]any{"matchRequestId": m.ID},
	})

	return m, nil
}

func (s *service) ListRequests(ctx context.Context, userID string, box Box, page, pageSize int) ([]*MatchRequest, int, error) {
	return s.repo.ListByUser(ctx, userID, box, page, pageSize)
}

func (s *service) Accept(ctx context.Context, id, receiverID string) (*MatchRequest, error) {
	m, err := s.respond(ctx, id, receiverID, StatusAccepted)
	if err != nil {
		return nil, err
	}

	// When the request is bound to a booking that still needs an opponent,
	// accepting takes the seat.
	if m.BookingID != nil {
		if _, err := s.bookings.SetOpponent(ctx, *m.BookingID, m.ReceiverID); err != nil {
			return nil, err
		}
	}

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: m.SenderID,
		SenderID:   m.ReceiverID,
		Type:       notification.TypeMatchAccepted,
		Title:      "Match request accepted",
		Message:    fmt.Sprintf("%s accepted your match request", m.ReceiverName),
		Data:       map[string]any{"matchRequestId": m.ID},
	})

	return m, nil
}

func (s *service) Reject(ctx context.Context, id, receiverID string) (*MatchRequest, error) {
	m, err := s.respond(ctx, id, receiverID, StatusRejected)
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: m.SenderID,
		SenderID:   m.ReceiverID,
		Type:       notification.TypeMatchRejected,
		Title:      "Match request declined",
		Message:    fmt.Sprintf("%s declined your match request", m.ReceiverName),
		Data:       map[string]any{"matchRequestId": m.ID},
	})

	return m, nil
}

func (s *service) respond(ctx context.Context, id, receiverID string, to Status) (*MatchRequest, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.ReceiverID != receiverID {
		return nil, ErrPermissionDenied
	}

	changed, err := s.repo.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidTransition
	}
	m.Status = to
	return m, nil
}
