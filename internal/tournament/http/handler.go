package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/tournament"
)

type Handler struct {
	service tournament.Service
}

func NewHandler(service tournament.Service) *Handler {
	return &Handler{service: service}
}

// List is the public tournament calendar.
func (h *Handler) List(c *gin.Context) {
	var req ListTournamentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	filter := tournament.Filter{
		Sport:    req.Sport,
		Page:     req.Page,
		PageSize: req.Limit,
	}
	if req.Status != "" {
		status, err := tournament.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = string(status)
	}

	tournaments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TournamentResponse, len(tournaments))
	for i, t := range tournaments {
		items[i] = NewTournamentResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTournamentResponse(t))
}

// Create opens a new tournament for registration. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.FieldError(c, "startDate", "must be an ISO 8601 date")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.FieldError(c, "endDate", "must be an ISO 8601 date")
		return
	}

	t, err := h.service.Create(c.Request.Context(), tournament.CreateRequest{
		Name:            req.Name,
		Description:     req.Description,
		Sport:           req.Sport,
		SkillLevel:      req.SkillLevel,
		StartDate:       start,
		EndDate:         end,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTournamentResponse(t))
}

// Update edits tournament fields. Admin only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	update := tournament.UpdateRequest{
		Name:            req.Name,
		Description:     req.Description,
		Sport:           req.Sport,
		SkillLevel:      req.SkillLevel,
		MaxParticipants: req.MaxParticipants,
	}

	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			response.FieldError(c, "startDate", "must be an ISO 8601 date")
			return
		}
		update.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			response.FieldError(c, "endDate", "must be an ISO 8601 date")
			return
		}
		update.EndDate = &end
	}
	if req.Status != nil {
		status, err := tournament.ParseStatus(*req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		update.Status = &status
	}

	t, err := h.service.Update(c.Request.Context(), id, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTournamentResponse(t))
}

// Delete removes a tournament without registrations. Admin only.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tournament deleted"})
}

// Join registers the authenticated player.
func (h *Handler) Join(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.Join(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTournamentResponse(t))
}

// Leave withdraws the authenticated player's registration.
func (h *Handler) Leave(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Leave(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left tournament"})
}
