package tournament

import (
	"net/http"
	"strings"
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "tournament not found")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid tournament status")
	ErrInvalidDates     = apperror.New(http.StatusUnprocessableEntity, "end date must not be before start date")
	ErrNotJoinable      = apperror.New(http.StatusBadRequest, "tournament is not open for registration")
	ErrFull             = apperror.New(http.StatusConflict, "tournament is full")
	ErrAlreadyJoined    = apperror.New(http.StatusConflict, "already registered for this tournament")
	ErrNotParticipant   = apperror.New(http.StatusBadRequest, "not registered for this tournament")
	ErrHasParticipants  = apperror.New(http.StatusBadRequest, "tournament has registered participants")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidCapacity  = apperror.New(http.StatusBadRequest, "maximum participants must be positive")
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming":
		return StatusUpcoming, nil
	case "ongoing":
		return StatusOngoing, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Tournament is an admin-organized event players register for.
type Tournament struct {
	ID                  string
	Name                string
	Description         *string
	Sport               string
	SkillLevel          *string
	StartDate           time.Time
	EndDate             time.Time
	MaxParticipants     int
	CurrentParticipants int
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Filter defines parameters for listing tournaments.
type Filter struct {
	Sport  string
	Status string

	Page     int
	PageSize int
}
