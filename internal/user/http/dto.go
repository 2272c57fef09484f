package http

import (
	"time"

	"github.com/courtwala/courtwala-backend/internal/pkg/request"
	"github.com/courtwala/courtwala-backend/internal/user"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"omitempty,min=3,max=30"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"omitempty"`
	Role      string `json:"role" binding:"omitempty"`
}

type LoginRequest struct {
	// Login accepts either an email address or a username.
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName       *string  `json:"firstName"`
	LastName        *string  `json:"lastName"`
	Phone           *string  `json:"phone"`
	SkillLevel      *string  `json:"skillLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	PreferredSports []string `json:"preferredSports"`
}

// ListUsersRequest defines query parameters for the admin user listing.
type ListUsersRequest struct {
	request.ListParams
	Role   string `form:"role" binding:"omitempty"`
	Status string `form:"status" binding:"omitempty"`
	Search string `form:"search"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Username        *string    `json:"username"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Phone           *string    `json:"phone"`
	ProfilePicture  *string    `json:"profilePicture"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	SkillLevel      *string    `json:"skillLevel"`
	PreferredSports []string   `json:"preferredSports"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastLoginAt     *time.Time `json:"lastLoginAt"`
}

// UserTag is a brief representation of a user embedded in other responses.
type UserTag struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenResponse wraps a successful login or registration.
type TokenResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	sports := u.PreferredSports
	if sports == nil {
		sports = []string{}
	}

	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		ProfilePicture:  u.ProfilePicture,
		Role:            string(u.Role),
		Status:          string(u.Status),
		SkillLevel:      u.SkillLevel,
		PreferredSports: sports,
		CreatedAt:       u.CreatedAt,
		LastLoginAt:     u.LastLoginAt,
	}
}
