package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/matchmaking"
	"github.com/courtwala/courtwala-backend/internal/user"
)

type SearchPlayersRequest struct {
	Search     string `form:"search"`
	Sport      string `form:"sport"`
	SkillLevel string `form:"skillLevel"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (r *SearchPlayersRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type SendRequestRequest struct {
	ReceiverID string  `json:"receiverId" binding:"required,uuid"`
	BookingID  *string `json:"bookingId" binding:"omitempty,uuid"`
	Sport      string  `json:"sport" binding:"required"`
	SkillLevel string  `json:"skillLevel"`
	Message    string  `json:"message"`
}

type ListRequestsRequest struct {
	Box   string `form:"box"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

func (r *ListRequestsRequest) Normalize() {
	if r.Box != string(matchmaking.BoxSent) {
		r.Box = string(matchmaking.BoxReceived)
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type PlayerResponse struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	SkillLevel      *string  `json:"skillLevel,omitempty"`
	PreferredSports []string `json:"preferredSports,omitempty"`
	ProfilePicture  *string  `json:"profilePicture,omitempty"`
}

type MatchRequestResponse struct {
	ID           string  `json:"id"`
	SenderID     string  `json:"senderId"`
	SenderName   string  `json:"senderName"`
	ReceiverID   string  `json:"receiverId"`
	ReceiverName string  `json:"receiverName"`
	BookingID    *string `json:"bookingId,omitempty"`
	Sport        string  `json:"sport"`
	SkillLevel   string  `json:"skillLevel,omitempty"`
	Message      string  `json:"message,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

func NewPlayerResponse(u *user.User) PlayerResponse {
	return PlayerResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		SkillLevel:      u.SkillLevel,
		PreferredSports: u.PreferredSports,
		ProfilePicture:  u.ProfilePicture,
	}
}

func NewMatchRequestResponse(m *matchmaking.MatchRequest) MatchRequestResponse {
	return MatchRequestResponse{
		ID:           m.ID,
		SenderID:     m.SenderID,
		SenderName:   m.SenderName,
		ReceiverID:   m.ReceiverID,
		ReceiverName: m.ReceiverName,
		BookingID:    m.BookingID,
		Sport:        m.Sport,
		SkillLevel:   m.SkillLevel,
		Message:      m.Message,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}
