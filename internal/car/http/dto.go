package http

import (
	"time"

	"github.com/rentwheels/car-rental-backend/internal/car"
	"github.com/rentwheels/car-rental-backend/internal/file"
)

// CarData is the JSON document carried in the "carData" form field of the
// add-car request.
type CarData struct {
	Brand           string  `json:"brand" binding:"required"`
	Model           string  `json:"model" binding:"required"`
	Year            int     `json:"year"`
	PricePerDay     float64 `json:"pricePerDay" binding:"required"`
	Category        string  `json:"category"`
	Transmission    string  `json:"transmission"`
	FuelType        string  `json:"fuel_type"`
	SeatingCapacity int     `json:"seating_capacity"`
	Location        string  `json:"location" binding:"required"`
	Description     string  `json:"description"`
}

// CarIDBody is the payload for toggle-car and delete-car.
type CarIDBody struct {
	CarID string `json:"carId" binding:"required"`
}

type CarResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Year            int       `json:"year"`
	PricePerDay     float64   `json:"pricePerDay"`
	Category        string    `json:"category"`
	Transmission    string    `json:"transmission"`
	FuelType        string    `json:"fuel_type"`
	SeatingCapacity int       `json:"seating_capacity"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Image           *string   `json:"image"`
	IsAvailable     bool      `json:"isAvailable"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewCarResponse(c *car.Car) CarResponse {
	var image *string
	if c.ImageID != nil {
		u := file.FileURL(*c.ImageID)
		image = &u
	}

	return CarResponse{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Brand:           c.Brand,
		Model:           c.Model,
		Year:            c.Year,
		PricePerDay:     c.PricePerDay,
		Category:        c.Category,
		Transmission:    c.Transmission,
		FuelType:        c.FuelType,
		SeatingCapacity: c.SeatingCapacity,
		Location:        c.Location,
		Description:     c.Description,
		Image:           image,
		IsAvailable:     c.IsAvailable,
		CreatedAt:       c.CreatedAt,
	}
}
