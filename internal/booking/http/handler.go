package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/auth"
	"github.com/rentwheels/car-rental-backend/internal/booking"
	carHttp "github.com/rentwheels/car-rental-backend/internal/car/http"
	"github.com/rentwheels/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// CheckAvailability handles POST /api/booking/check-availability.
// Given a location and a date range it returns the listed cars that are
// free for every day of the range.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var body CheckAvailabilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "location, pickupDate and returnDate are required")
		return
	}

	pickup, err := parseDate(body.PickupDate)
	if err != nil {
		response.BadRequest(c, "invalid pickupDate")
		return
	}
	ret, err := parseDate(body.ReturnDate)
	if err != nil {
		response.BadRequest(c, "invalid returnDate")
		return
	}

	cars, err := h.service.SearchAvailable(c.Request.Context(), body.Location, pickup, ret)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]carHttp.CarResponse, len(cars))
	for i, item := range cars {
		items[i] = carHttp.NewCarResponse(item)
	}

	response.OK(c, response.Body{"availableCars": items})
}

// Create handles POST /api/booking/create.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "car, pickupDate and returnDate are required")
		return
	}

	pickup, err := parseDate(body.PickupDate)
	if err != nil {
		response.BadRequest(c, "invalid pickupDate")
		return
	}
	ret, err := parseDate(body.ReturnDate)
	if err != nil {
		response.BadRequest(c, "invalid returnDate")
		return
	}

	req := booking.CreateRequest{
		UserID:     auth.GetUserID(c),
		CarID:      body.Car,
		PickupDate: pickup,
		ReturnDate: ret,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.Body{
		"message": "booking created",
		"booking": NewBookingResponse(b, false),
	})
}

// ListForUser handles GET /api/booking/user.
func (h *Handler) ListForUser(c *gin.Context) {
	bookings, err := h.service.ListForUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b, false)
	}

	response.OK(c, response.Body{"bookings": items})
}

// ListForOwner handles GET /api/booking/owner.
func (h *Handler) ListForOwner(c *gin.Context) {
	bookings, err := h.service.ListForOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b, true)
	}

	response.OK(c, response.Body{"bookings": items})
}

// ChangeStatus handles POST /api/booking/change-status.
func (h *Handler) ChangeStatus(c *gin.Context) {
	var body ChangeStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "bookingId and status are required")
		return
	}

	status, err := booking.ParseStatus(body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.ChangeStatus(c.Request.Context(), auth.GetUserID(c), body.BookingID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{
		"message": "status updated",
		"booking": NewBookingResponse(b, true),
	})
}

// Dashboard handles GET /api/owner/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	data, err := h.service.Dashboard(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{"dashboardData": NewDashboardResponse(data)})
}
