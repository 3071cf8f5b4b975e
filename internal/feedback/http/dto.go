package http

import (
	"time"

	"github.com/rentwheels/car-rental-backend/internal/feedback"
)

type CreateFeedbackBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewFeedbackResponse(f *feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Rating:    f.Rating,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
	}
}
