package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/courtwala/courtwala-backend/internal/auth"
)

// RegisterRequest carries validated registration input.
type RegisterRequest struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
}

// UpdateProfileRequest carries the fields a user may change on their own account.
type UpdateProfileRequest struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	ProfilePicture  *string
	SkillLevel      *string
	PreferredSports []string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, emailOrUsername, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*User, error)
	CountByRole(ctx context.Context) (map[Role]int, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := req.Role
	if role == "" {
		role = RolePlayer
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Court owners wait for admin approval before listing courts.
	status := StatusActive
	if role == RoleCourtOwner {
		status = StatusPendingApproval
	}

	u := &User{
		Email:        cleanEmail,
		Username:     optional(req.Username),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        optional(req.Phone),
		Role:         role,
		Status:       status,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, emailOrUsername, password string) (*User, error) {
	login := strings.TrimSpace(emailOrUsername)
	if login == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if u.Status == StatusBlocked || u.Status == StatusSuspended {
		return nil, ErrAccountBlocked
	}

	// Update last_login_at (best effort; do not fail login if update fails).
	now := time.Now().UTC()
	_ = s.repo.UpdateLastLogin(ctx, u.ID, now)

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		u.Phone = optional(*req.Phone)
	}
	if req.ProfilePicture != nil {
		u.ProfilePicture = optional(*req.ProfilePicture)
	}
	if req.SkillLevel != nil {
		u.SkillLevel = optional(*req.SkillLevel)
	}
	if req.PreferredSports != nil {
		u.PreferredSports = req.PreferredSports
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	u.Status = status
	return u, nil
}

func (s *service) CountByRole(ctx context.Context) (map[Role]int, error) {
	return s.repo.CountByRole(ctx)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optional returns nil for blank strings so they store as NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
