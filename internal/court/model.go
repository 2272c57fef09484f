package court

import (
	"net/http"
	"strings"
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "court not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid court status")
	ErrNotReviewable    = apperror.New(http.StatusBadRequest, "status must be active, inactive or rejected")
	ErrHasLiveBookings  = apperror.New(http.StatusBadRequest, "court has pending or confirmed bookings")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price per hour must be positive")
)

// Status is the closed set of court lifecycle states.
type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusActive          Status = "active"
	StatusInactive        Status = "inactive"
	StatusRejected        Status = "rejected"
)

// ParseStatus is the single normalization point for external status input.
// Legacy aliases from older clients ("PENDING", "APPROVED") are folded into
// the canonical values here and nowhere else.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending_approval", "pending":
		return StatusPendingApproval, nil
	case "active", "approved":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Court represents a bookable sports court listed by an owner.
type Court struct {
	ID           string
	OwnerID      string
	OwnerName    string
	Name         string
	Description  *string
	Address      string
	City         string
	State        string
	ZipCode      string
	Sport        string
	PricePerHour float64
	Amenities    []string
	Images       []string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	OwnerID  string
	Sport    string
	City     string
	Status   string
	MinPrice *float64
	MaxPrice *float64
	Search   string

	Page     int
	PageSize int
}
