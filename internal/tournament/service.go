package tournament

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtwala/courtwala-backend/internal/notification"
)

type CreateRequest struct {
	Name            string
	Description     *string
	Sport           string
	SkillLevel      *string
	StartDate       time.Time
	EndDate         time.Time
	MaxParticipants int
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	Sport           *string
	SkillLevel      *string
	StartDate       *time.Time
	EndDate         *time.Time
	MaxParticipants *int
	Status          *Status
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tournament, error)
	GetByID(ctx context.Context, id string) (*Tournament, error)
	List(ctx context.Context, filter Filter) ([]*Tournament, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Tournament, error)
	Delete(ctx context.Context, id string) error

	Join(ctx context.Context, id, playerID string) (*Tournament, error)
	Leave(ctx context.Context, id, playerID string) error
}

type service struct {
	repo     Repository
	notifier notification.Dispatcher
}

func NewService(repo Repository, notifier notification.Dispatcher) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.MaxParticipants < 1 {
		return nil, ErrInvalidCapacity
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidDates
	}

	t := &Tournament{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Sport:           req.Sport,
		SkillLevel:      req.SkillLevel,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		Status:          StatusUpcoming,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Tournament, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Tournament, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Sport != nil {
		t.Sport = *req.Sport
	}
	if req.SkillLevel != nil {
		t.SkillLevel = req.SkillLevel
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = *req.EndDate
	}
	if t.EndDate.Before(t.StartDate) {
		return nil, ErrInvalidDates
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 {
			return nil, ErrInvalidCapacity
		}
		t.MaxParticipants = *req.MaxParticipants
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tournament without registrations. Tournaments that
// already gathered players are cancelled instead of deleted.
func (s *service) Delete(ctx context.Context, id string) error {
	has, err := s.repo.HasParticipants(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return ErrHasParticipants
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Join(ctx context.Context, id, playerID string) (*Tournament, error) {
	t, err := s.repo.Join(ctx, id, playerID)
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(notification.CreateRequest{
		ReceiverID: playerID,
		Type:       notification.TypeTournamentJoined,
		Title:      "Tournament registration confirmed",
		Message:    fmt.Sprintf("You are registered for %s starting %s", t.Name, t.StartDate.Format("2006-01-02")),
		Data:       map[string]any{"tournamentId": t.ID},
	})

	return t, nil
}

func (s *service) Leave(ctx context.Context, id, playerID string) error {
	return s.repo.Leave(ctx, id, playerID)
}
