package http

import (
	"time"

	"github.com/rentwheels/car-rental-backend/internal/user"
)

// RegisterBody is the payload for POST /api/user/register.
type RegisterBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginBody is the payload for POST /api/user/login.
type LoginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FavoriteBody is the payload for the favorite add/remove endpoints.
type FavoriteBody struct {
	CarID string `json:"carId" binding:"required"`
}

// UserResponse is the shape of account data returned to the client.
// The password hash never leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
