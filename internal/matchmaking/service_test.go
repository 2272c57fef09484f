package matchmaking

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/notification"
	"github.com/courtwala/courtwala-backend/internal/user"
)

type fakeRepo struct {
	requests map[string]*MatchRequest
	nextID   int
}

func (r *fakeRepo) Create(_ context.Context, m *MatchRequest) error {
	r.nextID++
	m.ID = fmt.Sprintf("match-%d", r.nextID)
	clone := *m
	r.requests[m.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*MatchRequest, error) {
	m, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string, box Box, _, _ int) ([]*MatchRequest, int, error) {
	var out []*MatchRequest
	for _, m := range r.requests {
		if (box == BoxSent && m.SenderID == userID) || (box == BoxReceived && m.ReceiverID == userID) {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) HasPendingBetween(_ context.Context, a, b string) (bool, error) {
	for _, m := range r.requests {
		if m.Status != StatusPending {
			continue
		}
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, to Status) (bool, error) {
	m, ok := r.requests[id]
	if !ok || m.Status != StatusPending {
		return false, nil
	}
	m.Status = to
	return true, nil
}

type fakePlayers struct {
	users map[string]*user.User
}

func (f *fakePlayers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakePlayers) List(_ context.Context, filter user.Filter) ([]*user.User, int, error) {
	var out []*user.User
	for _, u := range f.users {
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		if filter.Status != "" && string(u.Status) != filter.Status {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

type fakeBookings struct {
	opponents map[string]string
}

func (f *fakeBookings) SetOpponent(_ context.Context, id, opponentID string) (*booking.Booking, error) {
	f.opponents[id] = opponentID
	return &booking.Booking{ID: id, OpponentID: &opponentID}, nil
}

type recordingDispatcher struct {
	sent []notification.CreateRequest
}

func (d *recordingDispatcher) Dispatch(req notification.CreateRequest) {
	d.sent = append(d.sent, req)
}

func newTestService() (Service, *fakeBookings, *recordingDispatcher) {
	repo := &fakeRepo{requests: make(map[string]*MatchRequest)}
	players := &fakePlayers{users: map[string]*user.User{
		"alice":   {ID: "alice", Role: user.RolePlayer, Status: user.StatusActive},
		"bob":     {ID: "bob", Role: user.RolePlayer, Status: user.StatusActive},
		"blocked": {ID: "blocked", Role: user.RolePlayer, Status: user.StatusBlocked},
		"owner":   {ID: "owner", Role: user.RoleCourtOwner, Status: user.StatusActive},
	}}
	bookings := &fakeBookings{opponents: make(map[string]string)}
	dispatcher := &recordingDispatcher{}
	return NewService(repo, players, bookings, dispatcher), bookings, dispatcher
}

func TestSendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies receiver", func(t *testing.T) {
		svc, _, dispatcher := newTestService()

		m, err := svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "bob", Sport: "tennis",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, m.Status)

		require.Len(t, dispatcher.sent, 1)
		assert.Equal(t, "bob", dispatcher.sent[0].ReceiverID)
		assert.Equal(t, notification.TypeMatchRequest, dispatcher.sent[0].Type)
	})

	t.Run("self send", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "alice", Sport: "tennis",
		})
		assert.ErrorIs(t, err, ErrSelfRequest)
	})

	t.Run("receiver blocked", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "blocked", Sport: "tennis",
		})
		assert.ErrorIs(t, err, ErrReceiverInactive)
	})

	t.Run("receiver not a player", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "owner", Sport: "tennis",
		})
		assert.ErrorIs(t, err, ErrReceiverInactive)
	})

	t.Run("duplicate pending pair either direction", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "bob", Sport: "tennis",
		})
		require.NoError(t, err)

		_, err = svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "bob", Sport: "tennis",
		})
		assert.ErrorIs(t, err, ErrDuplicateRequest)

		_, err = svc.SendRequest(ctx, SendRequest{
			SenderID: "bob", ReceiverID: "alice", Sport: "tennis",
		})
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})
}

func TestAcceptReject(t *testing.T) {
	ctx := context.Background()

	send := func(t *testing.T, svc Service, bookingID *string) *MatchRequest {
		t.Helper()
		m, err := svc.SendRequest(ctx, SendRequest{
			SenderID: "alice", ReceiverID: "bob", Sport: "tennis", BookingID: bookingID,
		})
		require.NoError(t, err)
		return m
	}

	t.Run("receiver accepts, sender notified", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		m := send(t, svc, nil)

		updated, err := svc.Accept(ctx, m.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, updated.Status)

		require.Len(t, dispatcher.sent, 2)
		assert.Equal(t, "alice", dispatcher.sent[1].ReceiverID)
		assert.Equal(t, notification.TypeMatchAccepted, dispatcher.sent[1].Type)
	})

	t.Run("accept fills booking opponent seat", func(t *testing.T) {
		svc, bookings, _ := newTestService()
		bookingID := "booking-7"
		m := send(t, svc, &bookingID)

		_, err := svc.Accept(ctx, m.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", bookings.opponents["booking-7"])
	})

	t.Run("sender cannot accept own request", func(t *testing.T) {
		svc, _, _ := newTestService()
		m := send(t, svc, nil)

		_, err := svc.Accept(ctx, m.ID, "alice")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("accept twice is invalid", func(t *testing.T) {
		svc, _, _ := newTestService()
		m := send(t, svc, nil)

		_, err := svc.Accept(ctx, m.ID, "bob")
		require.NoError(t, err)

		_, err = svc.Accept(ctx, m.ID, "bob")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("reject notifies sender", func(t *testing.T) {
		svc, _, dispatcher := newTestService()
		m := send(t, svc, nil)

		updated, err := svc.Reject(ctx, m.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, updated.Status)
		assert.Equal(t, notification.TypeMatchRejected, dispatcher.sent[1].Type)
	})
}
