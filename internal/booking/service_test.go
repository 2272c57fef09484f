package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtwala/courtwala-backend/internal/notification"
)

// fakeCourt is the slice of court state the repository needs for create.
type fakeCourt struct {
	ownerID string
	name    string
	status  string
}

// fakeRepository implements Repository in memory, reproducing the conflict
// and compare-and-set semantics of the SQL layer.
type fakeRepository struct {
	courts   map[string]fakeCourt
	bookings map[string]*Booking
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		courts:   make(map[string]fakeCourt),
		bookings: make(map[string]*Booking),
	}
}

func (r *fakeRepository) Create(_ context.Context, b *Booking) error {
	c, ok := r.courts[b.CourtID]
	if !ok {
		return ErrCourtNotFound
	}
	if c.status != "active" {
		return ErrCourtNotActive
	}

	for _, existing := range r.bookings {
		if existing.CourtID != b.CourtID || !existing.Date.Equal(b.Date) {
			continue
		}
		if existing.Status != StatusPending && existing.Status != StatusConfirmed {
			continue
		}
		if Overlaps(existing.StartTime, existing.EndTime, b.StartTime, b.EndTime) {
			return ErrTimeConflict
		}
	}

	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.OwnerID = c.ownerID
	b.CourtName = c.name
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepository) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.PlayerID != "" && b.PlayerID != filter.PlayerID {
			continue
		}
		if filter.OwnerID != "" && b.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CourtID != "" && b.CourtID != filter.CourtID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id string, from []Status, to Status) (bool, error) {
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if b.Status == f {
			b.Status = to
			b.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) SetOpponent(_ context.Context, id, opponentID string) (bool, error) {
	b, ok := r.bookings[id]
	if !ok || b.OpponentID != nil {
		return false, nil
	}
	b.OpponentID = &opponentID
	b.NeedsOpponent = false
	return true, nil
}

func (r *fakeRepository) StatsByOwner(_ context.Context, ownerID string) ([]StatusCount, error) {
	counts := make(map[Status]int)
	for _, b := range r.bookings {
		if b.OwnerID == ownerID {
			counts[b.Status]++
		}
	}
	var out []StatusCount
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	return out, nil
}

func (r *fakeRepository) CountByStatus(_ context.Context) (map[Status]int, error) {
	counts := make(map[Status]int)
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *fakeRepository) RevenueByOwner(_ context.Context, _ string) (float64, error) {
	return 0, nil
}

func (r *fakeRepository) BookedIntervals(_ context.Context, courtID string, date time.Time) ([][2]string, error) {
	var out [][2]string
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.Date.Equal(date) &&
			(b.Status == StatusPending || b.Status == StatusConfirmed) {
			out = append(out, [2]string{b.StartTime, b.EndTime})
		}
	}
	return out, nil
}

// recordingDispatcher captures dispatched notifications synchronously.
type recordingDispatcher struct {
	sent []notification.CreateRequest
}

func (d *recordingDispatcher) Dispatch(req notification.CreateRequest) {
	d.sent = append(d.sent, req)
}

func newTestService() (Service, *fakeRepository, *recordingDispatcher) {
	repo := newFakeRepository()
	repo.courts["court-1"] = fakeCourt{ownerID: "owner-1", name: "Center Court", status: "active"}
	repo.courts["court-closed"] = fakeCourt{ownerID: "owner-1", name: "Closed Court", status: "inactive"}

	dispatcher := &recordingDispatcher{}
	svc := NewService(repo, dispatcher)
	return svc, repo, dispatcher
}

func tomorrow() time.Time {
	return time.Now().UTC().AddDate(0, 0, 1)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies the court owner", func(t *testing.T) {
		svc, _, dispatcher := newTestService()

		b, err := svc.Create(ctx, CreateRequest{
			PlayerID:  "player-1",
			CourtID:   "court-1",
			Date:      tomorrow(),
			StartTime: "10:00",
			EndTime:   "11:00",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "owner-1", b.OwnerID)

		require.Len(t, dispatcher.sent, 1)
		assert.Equal(t, "owner-1", dispatcher.sent[0].ReceiverID)
		assert.Equal(t, notification.TypeBookingRequested, dispatcher.sent[0].Type)
	})

	t.Run("end before start", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "11:00", EndTime: "10:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("zero-length range", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "10:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("past date", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1",
			Date:      time.Now().UTC().AddDate(0, 0, -1),
			StartTime: "10:00", EndTime: "11:00",
		})
		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("unknown court", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-missing", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("inactive court", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-closed", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		assert.ErrorIs(t, err, ErrCourtNotActive)
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		svc, _, dispatcher := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			PlayerID: "player-2", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:30", EndTime: "11:30",
		})
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Len(t, dispatcher.sent, 1, "conflicting create must not notify")
	})

	t.Run("touching booking allowed", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			PlayerID: "player-2", CourtID: "court-1", Date: tomorrow(),
			StartTime: "11:00", EndTime: "12:00",
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled booking frees the range", func(t *testing.T) {
		svc, _, _ := newTestService()

		first, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, first.ID, "player-1", false)
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			PlayerID: "player-2", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		assert.NoError(t, err)
	})
}

func TestApproveReject(t *testing.T) {
	ctx := context.Background()

	createPending := func(t *testing.T, svc Service) *Booking {
		t.Helper()
		b, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		require.NoError(t, err)
		return b
	}

	t.Run("owner approves pending", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		b := createPending(t, svc)

		updated, err := svc.Approve(ctx, b.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)

		require.Len(t, dispatcher.sent, 2)
		assert.Equal(t, "player-1", dispatcher.sent[1].ReceiverID)
		assert.Equal(t, notification.TypeBookingApproved, dispatcher.sent[1].Type)
	})

	t.Run("owner rejects pending", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		b := createPending(t, svc)

		updated, err := svc.Reject(ctx, b.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, updated.Status)
		assert.Equal(t, notification.TypeBookingRejected, dispatcher.sent[1].Type)
	})

	t.Run("non-owner cannot approve", func(t *testing.T) {
		svc, _, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.Approve(ctx, b.ID, "player-1")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("approve twice is invalid", func(t *testing.T) {
		svc, _, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.Approve(ctx, b.ID, "owner-1")
		require.NoError(t, err)

		_, err = svc.Approve(ctx, b.ID, "owner-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("reject after approve is invalid", func(t *testing.T) {
		svc, _, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.Approve(ctx, b.ID, "owner-1")
		require.NoError(t, err)

		_, err = svc.Reject(ctx, b.ID, "owner-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Approve(ctx, "booking-missing", "owner-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	createPending := func(t *testing.T, svc Service) *Booking {
		t.Helper()
		b, err := svc.Create(ctx, CreateRequest{
			PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
			StartTime: "10:00", EndTime: "11:00",
		})
		require.NoError(t, err)
		return b
	}

	t.Run("player cancels, owner notified", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		b := createPending(t, svc)

		updated, err := svc.Cancel(ctx, b.ID, "player-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
		assert.Equal(t, "owner-1", dispatcher.sent[1].ReceiverID)
	})

	t.Run("owner cancels confirmed, player notified", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		b := createPending(t, svc)

		_, err := svc.Approve(ctx, b.ID, "owner-1")
		require.NoError(t, err)

		updated, err := svc.Cancel(ctx, b.ID, "owner-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
		assert.Equal(t, "player-1", dispatcher.sent[2].ReceiverID)
	})

	t.Run("admin cancels, player notified", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		b := createPending(t, svc)

		_, err := svc.Cancel(ctx, b.ID, "admin-1", true)
		require.NoError(t, err)
		assert.Equal(t, "player-1", dispatcher.sent[1].ReceiverID)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		svc, _, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.Cancel(ctx, b.ID, "stranger", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("cancel after reject is invalid", func(t *testing.T) {
		svc, _, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.Reject(ctx, b.ID, "owner-1")
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, b.ID, "player-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancel twice is invalid", func(t *testing.T) {
		svc, _, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.Cancel(ctx, b.ID, "player-1", false)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, b.ID, "player-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	b, err := svc.Create(ctx, CreateRequest{
		PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
		StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	// Pending bookings cannot be completed.
	_, err = svc.Complete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Approve(ctx, b.ID, "owner-1")
	require.NoError(t, err)

	updated, err := svc.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	// Completed is terminal.
	_, err = svc.Cancel(ctx, b.ID, "player-1", false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetByIDVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	b, err := svc.Create(ctx, CreateRequest{
		PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
		StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, b.ID, "player-1", false)
	assert.NoError(t, err, "player sees own booking")

	_, err = svc.GetByID(ctx, b.ID, "owner-1", false)
	assert.NoError(t, err, "court owner sees booking on their court")

	_, err = svc.GetByID(ctx, b.ID, "someone-else", true)
	assert.NoError(t, err, "admin sees everything")

	_, err = svc.GetByID(ctx, b.ID, "stranger", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSetOpponent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	b, err := svc.Create(ctx, CreateRequest{
		PlayerID: "player-1", CourtID: "court-1", Date: tomorrow(),
		StartTime: "10:00", EndTime: "11:00", NeedsOpponent: true,
	})
	require.NoError(t, err)

	_, err = svc.SetOpponent(ctx, b.ID, "player-1")
	assert.ErrorIs(t, err, ErrPermissionDenied, "cannot be your own opponent")

	updated, err := svc.SetOpponent(ctx, b.ID, "player-2")
	require.NoError(t, err)
	require.NotNil(t, updated.OpponentID)
	assert.Equal(t, "player-2", *updated.OpponentID)
	assert.False(t, updated.NeedsOpponent)

	_, err = svc.SetOpponent(ctx, b.ID, "player-3")
	assert.ErrorIs(t, err, ErrOpponentTaken)

	// The opponent gains visibility.
	_, err = svc.GetByID(ctx, b.ID, "player-2", false)
	assert.NoError(t, err)
}
