package slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtwala/courtwala-backend/internal/court"
)

type fakeRepo struct {
	slots  map[string]*Slot
	inUse  map[string]bool
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots: make(map[string]*Slot),
		inUse: make(map[string]bool),
	}
}

func (r *fakeRepo) BulkCreate(_ context.Context, courtID string, windows []Window) ([]*Slot, error) {
	for _, w := range windows {
		exists := false
		for _, s := range r.slots {
			if s.CourtID == courtID && s.StartTime == w.StartTime && s.EndTime == w.EndTime {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		r.nextID++
		id := fmt.Sprintf("slot-%d", r.nextID)
		r.slots[id] = &Slot{
			ID: id, CourtID: courtID,
			StartTime: w.StartTime, EndTime: w.EndTime,
			IsActive: true,
		}
	}
	return r.ListByCourt(context.Background(), courtID)
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *fakeRepo) ListByCourt(_ context.Context, courtID string) ([]*Slot, error) {
	var out []*Slot
	for _, s := range r.slots {
		if s.CourtID == courtID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.slots[id]; !ok {
		return ErrNotFound
	}
	delete(r.slots, id)
	return nil
}

func (r *fakeRepo) HasLiveBookings(_ context.Context, slotID string) (bool, error) {
	return r.inUse[slotID], nil
}

type fakeCourts struct {
	courts map[string]*court.Court
}

func (f *fakeCourts) GetByID(_ context.Context, id string) (*court.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, court.ErrNotFound
	}
	return c, nil
}

type fakeIntervals struct {
	booked [][2]string
}

func (f *fakeIntervals) BookedIntervals(_ context.Context, _ string, _ time.Time) ([][2]string, error) {
	return f.booked, nil
}

func newTestService() (Service, *fakeRepo, *fakeIntervals) {
	repo := newFakeRepo()
	courts := &fakeCourts{courts: map[string]*court.Court{
		"court-1": {ID: "court-1", OwnerID: "owner-1", Status: court.StatusActive},
	}}
	intervals := &fakeIntervals{}
	return NewService(repo, courts, intervals), repo, intervals
}

func TestCreateSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicates skipped on repost", func(t *testing.T) {
		svc, _, _ := newTestService()

		windows := []Window{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "11:00"},
		}

		slots, err := svc.CreateSlots(ctx, "court-1", "owner-1", windows)
		require.NoError(t, err)
		assert.Len(t, slots, 2)

		slots, err = svc.CreateSlots(ctx, "court-1", "owner-1", append(windows,
			Window{StartTime: "11:00", EndTime: "12:00"}))
		require.NoError(t, err)
		assert.Len(t, slots, 3)
	})

	t.Run("empty window list", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreateSlots(ctx, "court-1", "owner-1", nil)
		assert.ErrorIs(t, err, ErrNoSlots)
	})

	t.Run("inverted window", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreateSlots(ctx, "court-1", "owner-1",
			[]Window{{StartTime: "11:00", EndTime: "10:00"}})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreateSlots(ctx, "court-1", "owner-2",
			[]Window{{StartTime: "09:00", EndTime: "10:00"}})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown court", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreateSlots(ctx, "court-missing", "owner-1",
			[]Window{{StartTime: "09:00", EndTime: "10:00"}})
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	svc, _, intervals := newTestService()

	_, err := svc.CreateSlots(ctx, "court-1", "owner-1", []Window{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "12:00"},
	})
	require.NoError(t, err)

	// A free-form booking from 09:30 to 10:30 blocks the first two slots but
	// not the third: availability is interval overlap, not slot identity.
	intervals.booked = [][2]string{{"09:30", "10:30"}}

	availability, err := svc.AvailableSlots(ctx, "court-1", date)
	require.NoError(t, err)
	require.Len(t, availability, 3)

	got := make(map[string]bool)
	for _, a := range availability {
		got[a.Slot.StartTime] = a.Available
	}
	assert.False(t, got["09:00"])
	assert.False(t, got["10:00"])
	assert.True(t, got["11:00"])
}

func TestAvailableSlotsTouchingBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, intervals := newTestService()

	_, err := svc.CreateSlots(ctx, "court-1", "owner-1", []Window{
		{StartTime: "10:00", EndTime: "11:00"},
	})
	require.NoError(t, err)

	// A booking ending exactly at the slot start does not block it.
	intervals.booked = [][2]string{{"09:00", "10:00"}}

	availability, err := svc.AvailableSlots(ctx, "court-1", time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, availability, 1)
	assert.True(t, availability[0].Available)
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced by live booking", func(t *testing.T) {
		svc, repo, _ := newTestService()
		slots, err := svc.CreateSlots(ctx, "court-1", "owner-1",
			[]Window{{StartTime: "09:00", EndTime: "10:00"}})
		require.NoError(t, err)

		repo.inUse[slots[0].ID] = true

		err = svc.Delete(ctx, slots[0].ID, "owner-1")
		assert.ErrorIs(t, err, ErrSlotInUse)
	})

	t.Run("owner deletes unused slot", func(t *testing.T) {
		svc, _, _ := newTestService()
		slots, err := svc.CreateSlots(ctx, "court-1", "owner-1",
			[]Window{{StartTime: "09:00", EndTime: "10:00"}})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, slots[0].ID, "owner-1"))

		_, err = svc.ListByCourt(ctx, "court-1", "owner-1")
		require.NoError(t, err)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		svc, _, _ := newTestService()
		slots, err := svc.CreateSlots(ctx, "court-1", "owner-1",
			[]Window{{StartTime: "09:00", EndTime: "10:00"}})
		require.NoError(t, err)

		err = svc.Delete(ctx, slots[0].ID, "owner-2")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
