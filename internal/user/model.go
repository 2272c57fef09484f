package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email or username already used")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account has been blocked or suspended")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid user status")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// Role is the closed set of account roles.
type Role string

const (
	RolePlayer     Role = "player"
	RoleCourtOwner Role = "court_owner"
	RoleAdmin      Role = "admin"
)

// Status is the closed set of account states.
type Status string

const (
	StatusActive          Status = "active"
	StatusPendingApproval Status = "pending_approval"
	StatusBlocked         Status = "blocked"
	StatusSuspended       Status = "suspended"
)

// ParseRole normalizes external role input to a Role.
// Legacy uppercase values from older clients are accepted.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player":
		return RolePlayer, nil
	case "court_owner", "owner":
		return RoleCourtOwner, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseStatus normalizes external status input to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "pending_approval", "pending":
		return StatusPendingApproval, nil
	case "blocked":
		return StatusBlocked, nil
	case "suspended":
		return StatusSuspended, nil
	default:
		return "", ErrInvalidStatus
	}
}

// User represents an account in the system.
type User struct {
	ID              string // UUID
	Email           string
	Username        *string
	PasswordHash    string
	FirstName       string
	LastName        string
	Phone           *string
	ProfilePicture  *string
	Role            Role
	Status          Status
	SkillLevel      *string
	PreferredSports []string
	CreatedAt       time.Time
	LastLoginAt     *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Role       string
	Status     string
	Search     string // matches name, email or username
	Sport      string // matches preferred sports
	SkillLevel string

	Page     int
	PageSize int
}
