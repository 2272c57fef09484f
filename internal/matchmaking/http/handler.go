package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/matchmaking"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
)

type Handler struct {
	service matchmaking.Service
}

func NewHandler(service matchmaking.Service) *Handler {
	return &Handler{service: service}
}

// SearchPlayers finds active players to challenge, filtered by name, sport
// or skill level.
func (h *Handler) SearchPlayers(c *gin.Context) {
	var req SearchPlayersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	players, total, err := h.service.SearchPlayers(c.Request.Context(), matchmaking.SearchFilter{
		Search:     req.Search,
		Sport:      req.Sport,
		SkillLevel: req.SkillLevel,
		Page:       req.Page,
		PageSize:   req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PlayerResponse, len(players))
	for i, p := range players {
		items[i] = NewPlayerResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// SendRequest sends a match request to another player.
func (h *Handler) SendRequest(c *gin.Context) {
	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	m, err := h.service.SendRequest(c.Request.Context(), matchmaking.SendRequest{
		SenderID:   auth.GetUserID(c),
		ReceiverID: req.ReceiverID,
		BookingID:  req.BookingID,
		Sport:      req.Sport,
		SkillLevel: req.SkillLevel,
		Message:    req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewMatchRequestResponse(m))
}

// ListRequests lists the caller's sent or received match requests.
func (h *Handler) ListRequests(c *gin.Context) {
	var req ListRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	requests, total, err := h.service.ListRequests(c.Request.Context(),
		auth.GetUserID(c), matchmaking.Box(req.Box), req.Page, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MatchRequestResponse, len(requests))
	for i, m := range requests {
		items[i] = NewMatchRequestResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// Accept accepts a received match request.
func (h *Handler) Accept(c *gin.Context) {
	h.respond(c, h.service.Accept)
}

// Reject declines a received match request.
func (h *Handler) Reject(c *gin.Context) {
	h.respond(c, h.service.Reject)
}

func (h *Handler) respond(c *gin.Context, op func(ctx context.Context, id, receiverID string) (*matchmaking.MatchRequest, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	m, err := op(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMatchRequestResponse(m))
}
