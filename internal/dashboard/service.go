package dashboard

import (
	"context"

	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/user"
)

// The sources below are satisfied by the user, court and booking
// repositories and the report service.
type UserCounter interface {
	CountByRole(ctx context.Context) (map[user.Role]int, error)
	CountByStatus(ctx context.Context) (map[user.Status]int, error)
}

type CourtCounter interface {
	CountByStatus(ctx context.Context) (map[court.Status]int, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type BookingStats interface {
	CountByStatus(ctx context.Context) (map[booking.Status]int, error)
	StatsByOwner(ctx context.Context, ownerID string) ([]booking.StatusCount, error)
	RevenueByOwner(ctx context.Context, ownerID string) (float64, error)
}

type ReportCounter interface {
	PendingCount(ctx context.Context) (int, error)
}

// AdminOverview is the platform-wide dashboard block.
type AdminOverview struct {
	UsersByRole      map[user.Role]int
	UsersByStatus    map[user.Status]int
	CourtsByStatus   map[court.Status]int
	BookingsByStatus map[booking.Status]int
	PendingReports   int
}

// OwnerOverview summarizes one court owner's business.
type OwnerOverview struct {
	Courts   int
	Bookings []booking.StatusCount
	Revenue  float64
}

type Service interface {
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	OwnerOverview(ctx context.Context, ownerID string) (*OwnerOverview, error)
}

type service struct {
	users    UserCounter
	courts   CourtCounter
	bookings BookingStats
	reports  ReportCounter
}

func NewService(users UserCounter, courts CourtCounter, bookings BookingStats, reports ReportCounter) Service {
	return &service{
		users:    users,
		courts:   courts,
		bookings: bookings,
		reports:  reports,
	}
}

func (s *service) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	usersByRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	usersByStatus, err := s.users.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	courtsByStatus, err := s.courts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	bookingsByStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pendingReports, err := s.reports.PendingCount(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		UsersByRole:      usersByRole,
		UsersByStatus:    usersByStatus,
		CourtsByStatus:   courtsByStatus,
		BookingsByStatus: bookingsByStatus,
		PendingReports:   pendingReports,
	}, nil
}

func (s *service) OwnerOverview(ctx context.Context, ownerID string) (*OwnerOverview, error) {
	courts, err := s.courts.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.StatsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.bookings.RevenueByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &OwnerOverview{
		Courts:   courts,
		Bookings: bookings,
		Revenue:  revenue,
	}, nil
}
