package feedback

import (
	"net/http"
	"time"

	"github.com/rentwheels/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmailRequired   = apperror.New(http.StatusBadRequest, "email is required")
	ErrMessageRequired = apperror.New(http.StatusBadRequest, "message is required")
	ErrInvalidRating   = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
)

type Feedback struct {
	ID        string
	Name      string
	Email     string
	Rating    int
	Message   string
	CreatedAt time.Time
}
