package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
)

type CreateBookingRequest struct {
	CourtID       string  `json:"courtId" binding:"required,uuid"`
	Date          string  `json:"date" binding:"required"` // ISO 8601 date
	StartTime     string  `json:"startTime" binding:"required"`
	EndTime       string  `json:"endTime" binding:"required"`
	NeedsOpponent bool    `json:"needsOpponent"`
	SlotID        *string `json:"slotId" binding:"omitempty,uuid"`
}

type ListBookingsRequest struct {
	Status  string `form:"status"`
	Date    string `form:"date"`
	CourtID string `form:"courtId"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

func (r *ListBookingsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type BookingResponse struct {
	ID            string  `json:"id"`
	CourtID       string  `json:"courtId"`
	CourtName     string  `json:"courtName"`
	CourtSport    string  `json:"courtSport"`
	PricePerHour  float64 `json:"pricePerHour"`
	PlayerID      string  `json:"playerId"`
	PlayerName    string  `json:"playerName"`
	OpponentID    *string `json:"opponentId,omitempty"`
	SlotID        *string `json:"slotId,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	NeedsOpponent bool    `json:"needsOpponent"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type ListBookingsResponse struct {
	Bookings   []BookingResponse   `json:"bookings"`
	Pagination response.Pagination `json:"pagination"`
}

type OwnerStatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CourtID:       b.CourtID,
		CourtName:     b.CourtName,
		CourtSport:    b.CourtSport,
		PricePerHour:  b.PricePerHour,
		PlayerID:      b.PlayerID,
		PlayerName:    b.PlayerName,
		OpponentID:    b.OpponentID,
		SlotID:        b.SlotID,
		Date:          b.Date.Format("2006-01-02"),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		NeedsOpponent: b.NeedsOpponent,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

func NewOwnerStatsResponse(stats []booking.StatusCount) OwnerStatsResponse {
	var out OwnerStatsResponse
	for _, sc := range stats {
		out.Total += sc.Count
		switch sc.Status {
		case booking.StatusPending:
			out.Pending = sc.Count
		case booking.StatusConfirmed:
			out.Confirmed = sc.Count
		case booking.StatusRejected:
			out.Rejected = sc.Count
		case booking.StatusCancelled:
			out.Cancelled = sc.Count
		case booking.StatusCompleted:
			out.Completed = sc.Count
		}
	}
	return out
}
