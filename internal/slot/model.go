package slot

import (
	"net/http"
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "slot not found")
	ErrCourtNotFound    = apperror.New(http.StatusNotFound, "court not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidTimeRange = apperror.New(http.StatusUnprocessableEntity, "end time must be after start time")
	ErrNoSlots          = apperror.New(http.StatusUnprocessableEntity, "at least one slot is required")
	ErrSlotInUse        = apperror.New(http.StatusBadRequest, "slot has pending or confirmed bookings")
)

// Slot is a recurring bookable window on a court, date-free. The same slot
// applies to every calendar date; availability is resolved per date against
// the bookings for that date.
type Slot struct {
	ID        string
	CourtID   string
	StartTime string // "HH:mm"
	EndTime   string // "HH:mm"
	IsActive  bool
	CreatedAt time.Time
}

// Window is a start/end pair used for bulk creation.
type Window struct {
	StartTime string
	EndTime   string
}

// Availability pairs a slot with its bookability on a specific date.
type Availability struct {
	Slot      *Slot
	Available bool
}
