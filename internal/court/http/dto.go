package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/pkg/request"
)

// ListCourtsRequest defines query parameters for listing courts.
type ListCourtsRequest struct {
	request.ListParams
	Sport    string   `form:"sport"`
	City     string   `form:"city"`
	Status   string   `form:"status"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	Search   string   `form:"search"`
}

type CreateCourtRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Address      string   `json:"address" binding:"required"`
	City         string   `json:"city" binding:"required"`
	State        string   `json:"state" binding:"required"`
	ZipCode      string   `json:"zipCode" binding:"required"`
	Sport        string   `json:"sport" binding:"required"`
	PricePerHour float64  `json:"pricePerHour" binding:"required,gt=0"`
	Amenities    []string `json:"amenities"`
}

type UpdateCourtRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	ZipCode      *string  `json:"zipCode"`
	Sport        *string  `json:"sport"`
	PricePerHour *float64 `json:"pricePerHour" binding:"omitempty,gt=0"`
	Amenities    []string `json:"amenities"`
}

type ReviewCourtRequest struct {
	Status string `json:"status" binding:"required"`
}

type CourtResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	OwnerName    string    `json:"ownerName"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	Sport        string    `json:"sport"`
	PricePerHour float64   `json:"pricePerHour"`
	Amenities    []string  `json:"amenities"`
	Images       []string  `json:"images"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CourtTag is a brief representation of a court embedded in other responses.
type CourtTag struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	PricePerHour float64 `json:"pricePerHour"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := c.Images
	if images == nil {
		images = []string{}
	}

	return CourtResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		OwnerName:    c.OwnerName,
		Name:         c.Name,
		Description:  c.Description,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Sport:        c.Sport,
		PricePerHour: c.PricePerHour,
		Amenities:    amenities,
		Images:       images,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
