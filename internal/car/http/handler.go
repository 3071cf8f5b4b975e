package http

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/auth"
	"github.com/rentwheels/car-rental-backend/internal/car"
	"github.com/rentwheels/car-rental-backend/internal/file"
	"github.com/rentwheels/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	service     car.Service
	fileService file.Service
}

func NewHandler(service car.Service, fileService file.Service) *Handler {
	return &Handler{
		service:     service,
		fileService: fileService,
	}
}

// ListListed handles GET /api/user/cars: the public storefront listing.
func (h *Handler) ListListed(c *gin.Context) {
	cars, err := h.service.ListListed(c.Request.Context(), c.Query("location"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CarResponse, len(cars))
	for i, item := range cars {
		items[i] = NewCarResponse(item)
	}

	response.OK(c, response.Body{"cars": items})
}

// Add handles POST /api/owner/add-car. The request is multipart: a
// "carData" field holding the listing JSON and an optional "image" file.
func (h *Handler) Add(c *gin.Context) {
	ownerID := auth.GetUserID(c)

	raw := c.PostForm("carData")
	if raw == "" {
		response.BadRequest(c, "carData is required")
		return
	}

	var data CarData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		response.BadRequest(c, "invalid carData")
		return
	}

	var imageID *string
	if header, err := c.FormFile("image"); err == nil {
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			response.BadRequest(c, "image must be an image file")
			return
		}
		f, err := h.fileService.Upload(c.Request.Context(), header, ownerID)
		if err != nil {
			response.Error(c, err)
			return
		}
		imageID = &f.ID
	}

	created, err := h.service.Create(c.Request.Context(), ownerID, car.CreateRequest{
		Brand:           data.Brand,
		Model:           data.Model,
		Year:            data.Year,
		PricePerDay:     data.PricePerDay,
		Category:        data.Category,
		Transmission:    data.Transmission,
		FuelType:        data.FuelType,
		SeatingCapacity: data.SeatingCapacity,
		Location:        data.Location,
		Description:     data.Description,
		ImageID:         imageID,
	})
	if err != nil {
		// Orphaned uploads are cleaned up so a failed listing leaves no file behind.
		if imageID != nil {
			_ = h.fileService.Delete(c.Request.Context(), *imageID)
		}
		response.Error(c, err)
		return
	}

	response.Created(c, response.Body{
		"message": "car listed",
		"car":     NewCarResponse(created),
	})
}

// ListByOwner handles GET /api/owner/cars.
func (h *Handler) ListByOwner(c *gin.Context) {
	cars, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CarResponse, len(cars))
	for i, item := range cars {
		items[i] = NewCarResponse(item)
	}

	response.OK(c, response.Body{"cars": items})
}

// Toggle handles POST /api/owner/toggle-car: flips the listing flag.
func (h *Handler) Toggle(c *gin.Context) {
	var body CarIDBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "carId is required")
		return
	}

	updated, err := h.service.ToggleAvailability(c.Request.Context(), auth.GetUserID(c), body.CarID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{
		"message": "availability toggled",
		"car":     NewCarResponse(updated),
	})
}

// Delete handles POST /api/owner/delete-car.
func (h *Handler) Delete(c *gin.Context) {
	var body CarIDBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "carId is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetUserID(c), body.CarID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{"message": "car removed"})
}
