package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/report"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

// Create files a report against a user, court or booking.
func (h *Handler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), report.CreateRequest{
		ReporterID:        auth.GetUserID(c),
		ReportedUserID:    req.ReportedUserID,
		ReportedCourtID:   req.ReportedCourtID,
		ReportedBookingID: req.ReportedBookingID,
		Type:              req.Type,
		Message:           req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReportResponse(r))
}

// MyReports lists the caller's own reports.
func (h *Handler) MyReports(c *gin.Context) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	reports, total, err := h.service.MyReports(c.Request.Context(), auth.GetUserID(c), req.Page, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReportResponse, len(reports))
	for i, r := range reports {
		items[i] = NewReportResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// List is the admin moderation queue.
func (h *Handler) List(c *gin.Context) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	filter := report.Filter{
		Type:     req.Type,
		Page:     req.Page,
		PageSize: req.Limit,
	}
	if req.Status != "" {
		status, err := report.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = string(status)
	}

	reports, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReportResponse, len(reports))
	for i, r := range reports {
		items[i] = NewReportResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// UpdateStatus moves a report through the moderation workflow. Admin only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	status, err := report.ParseStatus(req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReportResponse(r))
}
