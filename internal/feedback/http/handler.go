package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/feedback"
	"github.com/rentwheels/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	service feedback.Service
}

func NewHandler(service feedback.Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/feedback.
func (h *Handler) Create(c *gin.Context) {
	var body CreateFeedbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "fill all the fields")
		return
	}

	f, err := h.service.Create(c.Request.Context(), feedback.CreateRequest{
		Name:    body.Name,
		Email:   body.Email,
		Rating:  body.Rating,
		Message: body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.Body{
		"message":  "thanks for your feedback",
		"feedback": NewFeedbackResponse(f),
	})
}

// List handles GET /api/feedback.
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.ListRecent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FeedbackResponse, len(list))
	for i, f := range list {
		items[i] = NewFeedbackResponse(f)
	}

	response.OK(c, response.Body{"feedback": items})
}
