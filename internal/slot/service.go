package slot

import (
	"context"
	"errors"
	"time"

	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/court"
)

// IntervalSource yields the live booked [start, end) ranges for a court on a
// date. Satisfied by the booking repository.
type IntervalSource interface {
	BookedIntervals(ctx context.Context, courtID string, date time.Time) ([][2]string, error)
}

// CourtSource resolves courts. Satisfied by the court service.
type CourtSource interface {
	GetByID(ctx context.Context, id string) (*court.Court, error)
}

type Service interface {
	CreateSlots(ctx context.Context, courtID, ownerID string, windows []Window) ([]*Slot, error)
	ListByCourt(ctx context.Context, courtID, ownerID string) ([]*Slot, error)
	AvailableSlots(ctx context.Context, courtID string, date time.Time) ([]Availability, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type service struct {
	repo      Repository
	courts    CourtSource
	intervals IntervalSource
}

func NewService(repo Repository, courts CourtSource, intervals IntervalSource) Service {
	return &service{
		repo:      repo,
		courts:    courts,
		intervals: intervals,
	}
}

// ownedCourt resolves the court and verifies ownership.
func (s *service) ownedCourt(ctx context.Context, courtID, ownerID string) (*court.Court, error) {
	c, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}
	return c, nil
}

func (s *service) CreateSlots(ctx context.Context, courtID, ownerID string, windows []Window) ([]*Slot, error) {
	if len(windows) == 0 {
		return nil, ErrNoSlots
	}
	for _, w := range windows {
		if w.EndTime <= w.StartTime {
			return nil, ErrInvalidTimeRange
		}
	}

	if _, err := s.ownedCourt(ctx, courtID, ownerID); err != nil {
		return nil, err
	}

	return s.repo.BulkCreate(ctx, courtID, windows)
}

func (s *service) ListByCourt(ctx context.Context, courtID, ownerID string) ([]*Slot, error) {
	if _, err := s.ownedCourt(ctx, courtID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByCourt(ctx, courtID)
}

// AvailableSlots computes bookability for each slot of a court on a date. A
// slot is unavailable when any live booking for that court and date overlaps
// its window, whether or not the booking references the slot.
func (s *service) AvailableSlots(ctx context.Context, courtID string, date time.Time) ([]Availability, error) {
	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	slots, err := s.repo.ListByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	booked, err := s.intervals.BookedIntervals(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	out := make([]Availability, len(slots))
	for i, sl := range slots {
		available := true
		for _, iv := range booked {
			if booking.Overlaps(sl.StartTime, sl.EndTime, iv[0], iv[1]) {
				available = false
				break
			}
		}
		out[i] = Availability{Slot: sl, Available: available}
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID string) error {
	sl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.ownedCourt(ctx, sl.CourtID, ownerID); err != nil {
		return err
	}

	inUse, err := s.repo.HasLiveBookings(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrSlotInUse
	}

	return s.repo.Delete(ctx, id)
}
