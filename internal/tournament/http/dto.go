package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/tournament"
)

type CreateTournamentRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	Sport           string  `json:"sport" binding:"required"`
	SkillLevel      *string `json:"skillLevel"`
	StartDate       string  `json:"startDate" binding:"required"`
	EndDate         string  `json:"endDate" binding:"required"`
	MaxParticipants int     `json:"maxParticipants" binding:"required"`
}

type UpdateTournamentRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Sport           *string `json:"sport"`
	SkillLevel      *string `json:"skillLevel"`
	StartDate       *string `json:"startDate"`
	EndDate         *string `json:"endDate"`
	MaxParticipants *int    `json:"maxParticipants"`
	Status          *string `json:"status"`
}

type ListTournamentsRequest struct {
	Sport  string `form:"sport"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListTournamentsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type TournamentResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	Sport               string  `json:"sport"`
	SkillLevel          *string `json:"skillLevel,omitempty"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	MaxParticipants     int     `json:"maxParticipants"`
	CurrentParticipants int     `json:"currentParticipants"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
}

func NewTournamentResponse(t *tournament.Tournament) TournamentResponse {
	return TournamentResponse{
		ID:                  t.ID,
		Name:                t.Name,
		Description:         t.Description,
		Sport:               t.Sport,
		SkillLevel:          t.SkillLevel,
		StartDate:           t.StartDate.Format("2006-01-02"),
		EndDate:             t.EndDate.Format("2006-01-02"),
		MaxParticipants:     t.MaxParticipants,
		CurrentParticipants: t.CurrentParticipants,
		Status:              string(t.Status),
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
	}
}
