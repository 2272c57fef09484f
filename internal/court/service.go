package court

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OwnerID      string
	Name         string
	Description  string
	Address      string
	City         string
	State        string
	ZipCode      string
	Sport        string
	PricePerHour float64
	Amenities    []string
}

type UpdateRequest struct {
	Name         *string
	Description  *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Sport        *string
	PricePerHour *float64
	Amenities    []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actingOwnerID string) (*Court, error)
	Delete(ctx context.Context, id string, actingOwnerID string) error
	Review(ctx context.Context, id string, status Status) (*Court, error)
	AttachImage(ctx context.Context, id, path, actingOwnerID string) (*Court, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.PricePerHour <= 0 {
		return nil, ErrInvalidPrice
	}

	c := &Court{
		OwnerID:      req.OwnerID,
		Name:         strings.TrimSpace(req.Name),
		Description:  optional(req.Description),
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Sport:        req.Sport,
		PricePerHour: req.PricePerHour,
		Amenities:    req.Amenities,
		Images:       []string{},
		// New listings wait for admin review.
		Status: StatusPendingApproval,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actingOwnerID string) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.OwnerID != actingOwnerID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = optional(*req.Description)
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.State != nil {
		c.State = *req.State
	}
	if req.ZipCode != nil {
		c.ZipCode = *req.ZipCode
	}
	if req.Sport != nil {
		c.Sport = *req.Sport
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrInvalidPrice
		}
		c.PricePerHour = *req.PricePerHour
	}
	if req.Amenities != nil {
		c.Amenities = req.Amenities
	}

	// Edits to a live listing go back through admin review.
	if c.Status == StatusActive {
		c.Status = StatusPendingApproval
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string, actingOwnerID string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if c.OwnerID != actingOwnerID {
		return ErrPermissionDenied
	}

	live, err := s.repo.HasLiveBookings(ctx, id)
	if err != nil {
		return err
	}
	if live {
		return ErrHasLiveBookings
	}

	return s.repo.Delete(ctx, id)
}

// Review is the admin approval action. Only active, inactive and rejected
// are valid review outcomes; a court never goes back to pending this way.
func (s *service) Review(ctx context.Context, id string, status Status) (*Court, error) {
	if status != StatusActive && status != StatusInactive && status != StatusRejected {
		return nil, ErrNotReviewable
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	c.Status = status
	return c, nil
}

func (s *service) AttachImage(ctx context.Context, id, path, actingOwnerID string) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.OwnerID != actingOwnerID {
		return nil, ErrPermissionDenied
	}

	if err := s.repo.AppendImage(ctx, id, path); err != nil {
		return nil, err
	}

	c.Images = append(c.Images, path)
	return c, nil
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
