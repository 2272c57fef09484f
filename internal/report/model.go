package report

import (
	"net/http"
	"strings"
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "report not found")
	ErrNoTarget        = apperror.New(http.StatusBadRequest, "a report needs a user, court or booking target")
	ErrSelfReport      = apperror.New(http.StatusBadRequest, "cannot report yourself")
	ErrTargetNotFound  = apperror.New(http.StatusNotFound, "report target not found")
	ErrInvalidStatus   = apperror.New(http.StatusBadRequest, "invalid report status")
	ErrMessageRequired = apperror.New(http.StatusBadRequest, "message is required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "reviewed":
		return StatusReviewed, nil
	case "resolved":
		return StatusResolved, nil
	case "dismissed":
		return StatusDismissed, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Report is a user complaint about another user, a court or a booking.
// At least one target is set; a booking report usually carries the user too.
type Report struct {
	ID                string
	ReporterID        string
	ReporterName      string
	ReportedUserID    *string
	ReportedCourtID   *string
	ReportedBookingID *string
	Type              string
	Message           string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Filter defines parameters for listing reports.
type Filter struct {
	ReporterID string
	Status     string
	Type       string

	Page     int
	PageSize int
}
