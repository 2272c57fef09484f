package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/pkg/request"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/slot"
)

type Handler struct {
	service slot.Service
}

func NewHandler(service slot.Service) *Handler {
	return &Handler{service: service}
}

// CreateSlots bulk-creates bookable windows on a court the caller owns.
// Windows that already exist are skipped, so re-posting a schedule is safe.
func (h *Handler) CreateSlots(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var req CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	windows := make([]slot.Window, len(req.Slots))
	for i, w := range req.Slots {
		start, ok := request.NormalizeClock(w.StartTime)
		if !ok {
			response.FieldError(c, "startTime", "must be a 24-hour HH:mm time")
			return
		}
		end, ok := request.NormalizeClock(w.EndTime)
		if !ok {
			response.FieldError(c, "endTime", "must be a 24-hour HH:mm time")
			return
		}
		windows[i] = slot.Window{StartTime: start, EndTime: end}
	}

	slots, err := h.service.CreateSlots(c.Request.Context(), courtID, auth.GetUserID(c), windows)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = NewSlotResponse(s)
	}
	c.JSON(http.StatusCreated, SlotListResponse{Slots: out})
}

// AvailableSlots lists a court's slots with per-date availability. Public.
func (h *Handler) AvailableSlots(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FieldError(c, "date", "is required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.FieldError(c, "date", "must be an ISO 8601 date")
		return
	}

	availability, err := h.service.AvailableSlots(c.Request.Context(), courtID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]AvailableSlotResponse, len(availability))
	for i, a := range availability {
		out[i] = AvailableSlotResponse{
			ID:        a.Slot.ID,
			StartTime: a.Slot.StartTime,
			EndTime:   a.Slot.EndTime,
			Available: a.Available,
		}
	}
	c.JSON(http.StatusOK, AvailableSlotListResponse{Slots: out})
}

// Delete removes a slot unless a live booking still references it.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "slot deleted"})
}
