package http

import (
	"github.com/courtwala/courtwala-backend/internal/slot"
)

type SlotWindow struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type CreateSlotsRequest struct {
	Slots []SlotWindow `json:"slots" binding:"required"`
}

type AvailableSlotsRequest struct {
	Date string `form:"date" binding:"required"`
}

type SlotResponse struct {
	ID        string `json:"id"`
	CourtID   string `json:"courtId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AvailableSlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

type AvailableSlotListResponse struct {
	Slots []AvailableSlotResponse `json:"slots"`
}

func NewSlotResponse(s *slot.Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		CourtID:   s.CourtID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}
