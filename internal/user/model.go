package user

import (
	"net/http"
	"time"

	"github.com/rentwheels/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "user already exists")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrMissingFields      = apperror.New(http.StatusBadRequest, "fill all the fields")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrCarIDRequired      = apperror.New(http.StatusBadRequest, "car ID required")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// User represents an account in the marketplace. A customer browses and
// books cars; an owner additionally lists cars and manages bookings made
// against them.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
