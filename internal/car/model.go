package car

import (
	"net/http"
	"time"

	"github.com/rentwheels/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "car not found")
	ErrNotOwner          = apperror.New(http.StatusForbidden, "not the owner of this car")
	ErrInvalidListing    = apperror.New(http.StatusBadRequest, "brand, model, location and a positive price are required")
	ErrHasActiveBookings = apperror.New(http.StatusConflict, "car has active bookings and cannot be removed")
)

// Car is a vehicle listing. IsAvailable is the owner-controlled listing
// toggle; whether the car is free for a given date range is a separate
// question answered by the booking module.
type Car struct {
	ID              string // UUID
	OwnerID         string
	Brand           string
	Model           string
	Year            int
	PricePerDay     float64
	Category        string
	Transmission    string
	FuelType        string
	SeatingCapacity int
	Location        string
	Description     string
	ImageID         *string // uploaded photo, served via /files/:id
	IsAvailable     bool
	CreatedAt       time.Time
}
