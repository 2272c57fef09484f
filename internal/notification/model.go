package notification

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("notification not found")
)

// Type labels what triggered a notification.
type Type string

const (
	TypeBookingRequested Type = "BOOKING_REQUESTED"
	TypeBookingApproved  Type = "BOOKING_APPROVED"
	TypeBookingRejected  Type = "BOOKING_REJECTED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
	TypeMatchRequest     Type = "MATCH_REQUEST"
	TypeMatchAccepted    Type = "MATCH_ACCEPTED"
	TypeMatchRejected    Type = "MATCH_REJECTED"
	TypeTournamentJoined Type = "TOURNAMENT_JOINED"
	TypeCourtReviewed    Type = "COURT_REVIEWED"
)

// Notification is a persisted in-app message for a user.
type Notification struct {
	ID         string
	ReceiverID string
	SenderID   *string
	Type       Type
	Title      string
	Message    string
	Data       map[string]any
	IsRead     bool
	CreatedAt  time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	ReceiverID string
	IsRead     *bool
	Type       string

	Page     int
	PageSize int
}
