package matchmaking

import (
	"net/http"
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "match request not found")
	ErrReceiverNotFound  = apperror.New(http.StatusNotFound, "receiver not found")
	ErrSelfRequest       = apperror.New(http.StatusBadRequest, "cannot send a match request to yourself")
	ErrReceiverInactive  = apperror.New(http.StatusBadRequest, "receiver is not an active player")
	ErrDuplicateRequest  = apperror.New(http.StatusConflict, "a pending request between these players already exists")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "match request is not pending")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// MatchRequest is an invitation from one player to another, optionally bound
// to a booking that still needs an opponent.
type MatchRequest struct {
	ID           string
	SenderID     string
	SenderName   string
	ReceiverID   string
	ReceiverName string
	BookingID    *string
	Sport        string
	SkillLevel   string
	Message      string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Box selects which side of the exchange a listing shows.
type Box string

const (
	BoxSent     Box = "sent"
	BoxReceived Box = "received"
)
