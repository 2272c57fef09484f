package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrCourtNotFound     = apperror.New(http.StatusNotFound, "court not found")
	ErrCourtNotActive    = apperror.New(http.StatusBadRequest, "court is not open for booking")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "the requested time overlaps an existing booking")
	ErrInvalidTimeRange  = apperror.New(http.StatusUnprocessableEntity, "end time must be after start time")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "booking is not in a state that allows this action")
	ErrDateInPast        = apperror.New(http.StatusUnprocessableEntity, "booking date cannot be in the past")
	ErrOpponentTaken     = apperror.New(http.StatusConflict, "booking already has an opponent")
)

// Status is the closed set of booking lifecycle states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ParseStatus normalizes external status input to a canonical value.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "confirmed", "approved":
		return StatusConfirmed, nil
	case "rejected":
		return StatusRejected, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return "", ErrInvalidStatus
	}
}

// transitions is the full state machine. Rejected, cancelled and completed
// are terminal; repeating a transition the booking is already past is an
// invalid transition, not a no-op.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether a booking in state from may move to state to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// statusOrder fixes iteration order over the state machine.
var statusOrder = []Status{
	StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted,
}

// TransitionSources returns the states a booking may move to target from.
// The compare-and-set status updates use this, so the transitions table is
// the single definition of the state machine.
func TransitionSources(target Status) []Status {
	var from []Status
	for _, s := range statusOrder {
		if CanTransition(s, target) {
			from = append(from, s)
		}
	}
	return from
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Times are zero-padded "HH:mm" strings, so
// lexicographic comparison is chronological comparison. Touching intervals
// (one ends exactly when the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// Booking is a reservation of a court for a time range on a calendar date.
type Booking struct {
	ID            string
	CourtID       string
	CourtName     string
	CourtSport    string
	PricePerHour  float64
	OwnerID       string
	PlayerID      string
	PlayerName    string
	OpponentID    *string
	SlotID        *string
	Date          time.Time // calendar date, midnight UTC
	StartTime     string    // "HH:mm"
	EndTime       string    // "HH:mm"
	NeedsOpponent bool
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	PlayerID string
	OwnerID  string // matches bookings on courts owned by this user
	CourtID  string
	Status   string
	Date     *time.Time

	Page     int
	PageSize int
}

// StatusCount is one row of the owner dashboard aggregate.
type StatusCount struct {
	Status Status
	Count  int
}
