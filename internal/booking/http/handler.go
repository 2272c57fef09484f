package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/pkg/request"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create places a new booking request for the authenticated player.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.FieldError(c, "date", "must be an ISO 8601 date")
		return
	}

	start, ok := request.NormalizeClock(req.StartTime)
	if !ok {
		response.FieldError(c, "startTime", "must be a 24-hour HH:mm time")
		return
	}
	end, ok := request.NormalizeClock(req.EndTime)
	if !ok {
		response.FieldError(c, "endTime", "must be a 24-hour HH:mm time")
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		PlayerID:      auth.GetUserID(c),
		CourtID:       req.CourtID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		NeedsOpponent: req.NeedsOpponent,
		SlotID:        req.SlotID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get returns a single booking. Only the player, the court owner, an assigned
// opponent or an admin may see it.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c), isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns bookings visible to the caller: players see their own, court
// owners see bookings on their courts, admins see everything.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	filter := booking.Filter{
		CourtID:  req.CourtID,
		Page:     req.Page,
		PageSize: req.Limit,
	}

	if req.Status != "" {
		status, err := booking.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = string(status)
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.FieldError(c, "date", "must be an ISO 8601 date")
			return
		}
		filter.Date = &date
	}

	switch auth.GetUserRole(c) {
	case string(user.RoleAdmin):
		// no scoping
	case string(user.RoleCourtOwner):
		filter.OwnerID = auth.GetUserID(c)
	default:
		filter.PlayerID = auth.GetUserID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, ListBookingsResponse{
		Bookings:   items,
		Pagination: response.NewPagination(req.Page, req.Limit, total),
	})
}

// Approve confirms a pending booking on behalf of the court owner.
func (h *Handler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Reject declines a pending booking on behalf of the court owner.
func (h *Handler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id, actorID string) (*booking.Booking, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := op(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Cancel withdraws a booking. Players cancel their own, owners cancel
// bookings on their courts, admins cancel anything still live.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c), isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// OwnerStats is the booking block of the owner dashboard.
func (h *Handler) OwnerStats(c *gin.Context) {
	stats, err := h.service.OwnerStats(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOwnerStatsResponse(stats))
}
