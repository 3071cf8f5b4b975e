package http

import (
	"time"

	"github.com/rentwheels/car-rental-backend/internal/booking"
	"github.com/rentwheels/car-rental-backend/internal/file"
)

// dateLayout is the wire format for calendar dates coming from the
// storefront's date pickers.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// CheckAvailabilityBody is the payload for POST /api/booking/check-availability.
type CheckAvailabilityBody struct {
	Location   string `json:"location"`
	PickupDate string `json:"pickupDate" binding:"required"`
	ReturnDate string `json:"returnDate" binding:"required"`
}

// CreateBookingBody is the payload for POST /api/booking/create.
type CreateBookingBody struct {
	Car        string `json:"car" binding:"required"`
	PickupDate string `json:"pickupDate" binding:"required"`
	ReturnDate string `json:"returnDate" binding:"required"`
}

// ChangeStatusBody is the payload for POST /api/booking/change-status.
type ChangeStatusBody struct {
	BookingID string `json:"bookingId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// CarSummaryResponse mirrors the car attributes booking lists display.
type CarSummaryResponse struct {
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	Category        string  `json:"category"`
	SeatingCapacity int     `json:"seating_capacity"`
	Location        string  `json:"location"`
	Image           *string `json:"image"`
}

// UserSummaryResponse identifies the requesting customer in owner views.
type UserSummaryResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID         string               `json:"id"`
	Car        CarSummaryResponse   `json:"car"`
	User       *UserSummaryResponse `json:"user,omitempty"`
	PickupDate string               `json:"pickupDate"`
	ReturnDate string               `json:"returnDate"`
	Price      float64              `json:"price"`
	Status     string               `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// NewBookingResponse converts a domain booking for the customer's own
// listing. withUser additionally exposes the customer identity for the
// owner's management view.
func NewBookingResponse(b *booking.Booking, withUser bool) BookingResponse {
	resp := BookingResponse{
		ID: b.ID,
		Car: CarSummaryResponse{
			Brand:           b.Car.Brand,
			Model:           b.Car.Model,
			Year:            b.Car.Year,
			Category:        b.Car.Category,
			SeatingCapacity: b.Car.SeatingCapacity,
			Location:        b.Car.Location,
			Image:           imageURL(b.Car.ImageID),
		},
		PickupDate: b.PickupDate.Format(dateLayout),
		ReturnDate: b.ReturnDate.Format(dateLayout),
		Price:      b.Price,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}

	if withUser {
		resp.User = &UserSummaryResponse{Name: b.UserName, Email: b.UserEmail}
	}

	return resp
}

func imageURL(fileID *string) *string {
	if fileID == nil {
		return nil
	}
	u := file.FileURL(*fileID)
	return &u
}

type DashboardResponse struct {
	TotalCars         int               `json:"totalCars"`
	TotalBookings     int               `json:"totalBookings"`
	PendingBookings   int               `json:"pendingBookings"`
	CompletedBookings int               `json:"completedBookings"`
	RecentBookings    []BookingResponse `json:"recentBookings"`
	MonthlyRevenue    float64           `json:"monthlyRevenue"`
}

func NewDashboardResponse(d *booking.DashboardData) DashboardResponse {
	recent := make([]BookingResponse, len(d.RecentBookings))
	for i, b := range d.RecentBookings {
		recent[i] = NewBookingResponse(b, true)
	}

	return DashboardResponse{
		TotalCars:         d.TotalCars,
		TotalBookings:     d.TotalBookings,
		PendingBookings:   d.PendingBookings,
		CompletedBookings: d.CompletedBookings,
		RecentBookings:    recent,
		MonthlyRevenue:    d.MonthlyRevenue,
	}
}
