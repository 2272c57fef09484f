package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/report"
)

type CreateReportRequest struct {
	ReportedUserID    *string `json:"reportedUserId" binding:"omitempty,uuid"`
	ReportedCourtID   *string `json:"reportedCourtId" binding:"omitempty,uuid"`
	ReportedBookingID *string `json:"reportedBookingId" binding:"omitempty,uuid"`
	Type              string  `json:"type" binding:"required"`
	Message           string  `json:"message" binding:"required"`
}

type ListReportsRequest struct {
	Status string `form:"status"`
	Type   string `form:"type"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListReportsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReportResponse struct {
	ID                string  `json:"id"`
	ReporterID        string  `json:"reporterId"`
	ReporterName      string  `json:"reporterName"`
	ReportedUserID    *string `json:"reportedUserId,omitempty"`
	ReportedCourtID   *string `json:"reportedCourtId,omitempty"`
	ReportedBookingID *string `json:"reportedBookingId,omitempty"`
	Type              string  `json:"type"`
	Message           string  `json:"message"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt"`
}

func NewReportResponse(r *report.Report) ReportResponse {
	return ReportResponse{
		ID:                r.ID,
		ReporterID:        r.ReporterID,
		ReporterName:      r.ReporterName,
		ReportedUserID:    r.ReportedUserID,
		ReportedCourtID:   r.ReportedCourtID,
		ReportedBookingID: r.ReportedBookingID,
		Type:              r.Type,
		Message:           r.Message,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
}
