package report

import (
	"context"
	"errors"
	"strings"

	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/user"
)

// UserSource, CourtSource and BookingSource resolve report targets. They are
// satisfied by the respective services and the booking repository.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type CourtSource interface {
	GetByID(ctx context.Context, id string) (*court.Court, error)
}

type BookingSource interface {
	GetByID(ctx context.Context, id string) (*booking.Booking, error)
}

type CreateRequest struct {
	ReporterID        string
	ReportedUserID    *string
	ReportedCourtID   *string
	ReportedBookingID *string
	Type              string
	Message           string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Report, error)
	MyReports(ctx context.Context, reporterID string, page, pageSize int) ([]*Report, int, error)
	List(ctx context.Context, filter Filter) ([]*Report, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Report, error)
	PendingCount(ctx context.Context) (int, error)
}

type service struct {
	repo     Repository
	users    UserSource
	courts   CourtSource
	bookings BookingSource
}

func NewService(repo Repository, users UserSource, courts CourtSource, bookings BookingSource) Service {
	return &service{
		repo:     repo,
		users:    users,
		courts:   courts,
		bookings: bookings,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Report, error) {
	if req.ReportedUserID == nil && req.ReportedCourtID == nil && req.ReportedBookingID == nil {
		return nil, ErrNoTarget
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrMessageRequired
	}

	if req.ReportedUserID != nil {
		if *req.ReportedUserID == req.ReporterID {
			return nil, ErrSelfReport
		}
		if _, err := s.users.GetByID(ctx, *req.ReportedUserID); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}
	}
	if req.ReportedCourtID != nil {
		if _, err := s.courts.GetByID(ctx, *req.ReportedCourtID); err != nil {
			if errors.Is(err, court.ErrNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}
	}
	if req.ReportedBookingID != nil {
		if _, err := s.bookings.GetByID(ctx, *req.ReportedBookingID); err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}
	}

	r := &Report{
		ReporterID:        req.ReporterID,
		ReportedUserID:    req.ReportedUserID,
		ReportedCourtID:   req.ReportedCourtID,
		ReportedBookingID: req.ReportedBookingID,
		Type:              req.Type,
		Message:           strings.TrimSpace(req.Message),
		Status:            StatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) MyReports(ctx context.Context, reporterID string, page, pageSize int) ([]*Report, int, error) {
	return s.repo.List(ctx, Filter{
		ReporterID: reporterID,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Report, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) PendingCount(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}
