package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/pkg/storage"
	"github.com/courtwala/courtwala-backend/internal/user"
)

const maxUploadSize = 5 << 20 // 5 MiB

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
	store      storage.Storage
	images     *storage.ImageProcessor
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager, store storage.Storage, images *storage.ImageProcessor) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
		store:      store,
		images:     images,
	}
}

// Register handles the user registration process.
// It validates the payload and creates a new user if the email is unique.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	role := user.RolePlayer
	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)
		if err != nil {
			response.FieldError(c, "role", "must be one of: player, court_owner")
			return
		}
		// Admin accounts are provisioned out of band, never via self-registration.
		if parsed == user.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot self-register as admin"})
			return
		}
		role = parsed
	}

	ctx := c.Request.Context()

	u, err := h.service.Register(ctx, user.RegisterRequest{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrPasswordTooShort):
			response.FieldError(c, "password", err.Error())
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{User: NewUserResponse(u), Token: token})
}

// Login authenticates a user using email/username and password.
// On success, it returns a JWT access token and the user profile.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	ctx := c.Request.Context()

	u, err := h.service.Login(ctx, req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrNotFound):
			// For security reasons, do not reveal which condition failed
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, user.ErrAccountBlocked):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{User: NewUserResponse(u), Token: token})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// UpdateProfile lets the authenticated user change their own profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	userID := auth.GetUserID(c)

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, user.UpdateProfileRequest{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		SkillLevel:      req.SkillLevel,
		PreferredSports: req.PreferredSports,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// UploadProfilePicture accepts a multipart image, normalizes it, stores it,
// and records the resulting path on the user's profile.
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	userID := auth.GetUserID(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image exceeds maximum size"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	normalized, err := h.images.Normalize(file, 512, 512)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unsupported image format"})
		return
	}

	path := fmt.Sprintf("profiles/%s/%d.jpg", userID, time.Now().UnixNano())
	if err := h.store.Save(c.Request.Context(), path, normalized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, user.UpdateProfileRequest{
		ProfilePicture: &path,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// ListUsers is the admin user directory.
func (h *Handler) ListUsers(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	filter := user.Filter{
		Role:     req.Role,
		Status:   req.Status,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.Limit,
	}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// UpdateUserStatus is the admin moderation action: approve pending court
// owners, block or suspend accounts.
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	status, err := user.ParseStatus(req.Status)
	if err != nil {
		response.FieldError(c, "status", "must be one of: active, pending_approval, blocked, suspended")
		return
	}

	u, err := h.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}
