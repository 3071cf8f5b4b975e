package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/pkg/apperror"
)

// Body is the envelope every endpoint returns. Success responses carry their
// payload in extra top-level keys next to "success"; failures carry "message".
type Body map[string]any

// OK sends a 200 response with success=true and the given payload keys.
func OK(c *gin.Context, payload Body) {
	withStatus(c, http.StatusOK, payload)
}

// Created sends a 201 response with success=true and the given payload keys.
func Created(c *gin.Context, payload Body) {
	withStatus(c, http.StatusCreated, payload)
}

func withStatus(c *gin.Context, status int, payload Body) {
	out := Body{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	c.JSON(status, out)
}

// Error sends {"success": false, "message": …}.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it defaults to 500 Internal Server Error with a
// generic message so infrastructure details never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, Body{"success": false, "message": appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, Body{"success": false, "message": "internal server error"})
}

// BadRequest is a shortcut for malformed input failures.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{"success": false, "message": message})
}
