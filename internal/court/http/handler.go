package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/pkg/storage"
)

const maxImageSize = 8 << 20 // 8 MiB

type Handler struct {
	service court.Service
	store   storage.Storage
	images  *storage.ImageProcessor
}

func NewHandler(service court.Service, store storage.Storage, images *storage.ImageProcessor) *Handler {
	return &Handler{
		service: service,
		store:   store,
		images:  images,
	}
}

// List is the public court directory. Anonymous callers only see active
// listings; owners and admins use the dedicated routes for the rest.
func (h *Handler) List(c *gin.Context) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	status := string(court.StatusActive)
	if req.Status != "" {
		parsed, err := court.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		status = string(parsed)
	}

	filter := court.Filter{
		Sport:    req.Sport,
		City:     req.City,
		Status:   status,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.Limit,
	}

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, crt := range courts {
		items[i] = NewCourtResponse(crt)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	crt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(crt))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	ownerID := auth.GetUserID(c)

	crt, err := h.service.Create(c.Request.Context(), court.CreateRequest{
		OwnerID:      ownerID,
		Name:         body.Name,
		Description:  body.Description,
		Address:      body.Address,
		City:         body.City,
		State:        body.State,
		ZipCode:      body.ZipCode,
		Sport:        body.Sport,
		PricePerHour: body.PricePerHour,
		Amenities:    body.Amenities,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCourtResponse(crt))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	ownerID := auth.GetUserID(c)

	crt, err := h.service.Update(c.Request.Context(), id, court.UpdateRequest{
		Name:         body.Name,
		Description:  body.Description,
		Address:      body.Address,
		City:         body.City,
		State:        body.State,
		ZipCode:      body.ZipCode,
		Sport:        body.Sport,
		PricePerHour: body.PricePerHour,
		Amenities:    body.Amenities,
	}, ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(crt))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	ownerID := auth.GetUserID(c)

	if err := h.service.Delete(c.Request.Context(), id, ownerID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// OwnerCourts lists the authenticated owner's courts in any status.
func (h *Handler) OwnerCourts(c *gin.Context) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	status := ""
	if req.Status != "" {
		parsed, err := court.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		status = string(parsed)
	}

	filter := court.Filter{
		OwnerID:  auth.GetUserID(c),
		Status:   status,
		Page:     req.Page,
		PageSize: req.Limit,
	}

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, crt := range courts {
		items[i] = NewCourtResponse(crt)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// Review is the admin approval endpoint.
func (h *Handler) Review(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var body ReviewCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	status, err := court.ParseStatus(body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	crt, err := h.service.Review(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(crt))
}

// AdminList exposes every court regardless of status for the admin console.
func (h *Handler) AdminList(c *gin.Context) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	status := ""
	if req.Status != "" {
		parsed, err := court.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		status = string(parsed)
	}

	filter := court.Filter{
		Sport:    req.Sport,
		City:     req.City,
		Status:   status,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.Limit,
	}

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, crt := range courts {
		items[i] = NewCourtResponse(crt)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// UploadImage accepts a multipart court photo, normalizes it and appends the
// stored path to the court's image list.
func (h *Handler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image exceeds maximum size"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	normalized, err := h.images.Normalize(file, 1600, 1200)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unsupported image format"})
		return
	}

	path := fmt.Sprintf("courts/%s/%d.jpg", id, time.Now().UnixNano())
	if err := h.store.Save(c.Request.Context(), path, normalized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	crt, err := h.service.AttachImage(c.Request.Context(), id, path, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCourtResponse(crt))
}
