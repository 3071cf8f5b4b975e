package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/car-rental-backend/internal/booking"
	"github.com/rentwheels/car-rental-backend/internal/car"
)

// stubService returns canned data so the handler's JSON contract can be
// tested in isolation.
type stubService struct {
	availableCars []*car.Car
	created       *booking.Booking
	createErr     error
	changed       *booking.Booking
	changeErr     error
}

func (s *stubService) CheckAvailability(context.Context, string, time.Time, time.Time) (bool, error) {
	return true, nil
}

func (s *stubService) SearchAvailable(context.Context, string, time.Time, time.Time) ([]*car.Car, error) {
	return s.availableCars, nil
}

func (s *stubService) Create(context.Context, booking.CreateRequest) (*booking.Booking, error) {
	return s.created, s.createErr
}

func (s *stubService) ListForUser(context.Context, string) ([]*booking.Booking, error) {
	return nil, nil
}

func (s *stubService) ListForOwner(context.Context, string) ([]*booking.Booking, error) {
	return nil, nil
}

func (s *stubService) ChangeStatus(context.Context, string, string, booking.Status) (*booking.Booking, error) {
	return s.changed, s.changeErr
}

func (s *stubService) Dashboard(context.Context, string) (*booking.DashboardData, error) {
	return &booking.DashboardData{}, nil
}

func (s *stubService) ExpireStalePending(context.Context) (int64, error) {
	return 0, nil
}

func setupRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	fakeAuth := func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	}
	passThrough := func(c *gin.Context) { c.Next() }

	api := r.Group("/api")
	RegisterRoutes(api, NewHandler(svc), fakeAuth, passThrough)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	svc := &stubService{
		availableCars: []*car.Car{{
			ID:          "car-1",
			Brand:       "Toyota",
			Model:       "Corolla",
			PricePerDay: 55,
			Location:    "Madrid",
			IsAvailable: true,
		}},
	}
	router := setupRouter(svc)

	t.Run("Returns Available Cars", func(t *testing.T) {
		w, body := doJSON(t, router, "POST", "/api/booking/check-availability", gin.H{
			"location":   "Madrid",
			"pickupDate": "2026-01-05",
			"returnDate": "2026-01-10",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])

		cars, ok := body["availableCars"].([]any)
		require.True(t, ok)
		require.Len(t, cars, 1)

		first := cars[0].(map[string]any)
		assert.Equal(t, "Toyota", first["brand"])
	})

	t.Run("Missing Dates", func(t *testing.T) {
		w, body := doJSON(t, router, "POST", "/api/booking/check-availability", gin.H{
			"location": "Madrid",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("Malformed Date", func(t *testing.T) {
		w, body := doJSON(t, router, "POST", "/api/booking/check-availability", gin.H{
			"location":   "Madrid",
			"pickupDate": "05/01/2026",
			"returnDate": "2026-01-10",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := &stubService{
			created: &booking.Booking{
				ID:         "booking-1",
				CarID:      "car-1",
				OwnerID:    "owner-1",
				UserID:     "user-1",
				PickupDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
				ReturnDate: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
				Price:      5000,
				Status:     booking.StatusPending,
			},
		}
		router := setupRouter(svc)

		w, body := doJSON(t, router, "POST", "/api/booking/create", gin.H{
			"car":        "car-1",
			"pickupDate": "2026-01-05",
			"returnDate": "2026-01-10",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, body["success"])

		b := body["booking"].(map[string]any)
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "2026-01-05", b["pickupDate"])
		assert.Equal(t, "2026-01-10", b["returnDate"])
		assert.Equal(t, 5000.0, b["price"])
	})

	t.Run("Conflict Maps To 409", func(t *testing.T) {
		svc := &stubService{createErr: booking.ErrCarUnavailable}
		router := setupRouter(svc)

		w, body := doJSON(t, router, "POST", "/api/booking/create", gin.H{
			"car":        "car-1",
			"pickupDate": "2026-01-05",
			"returnDate": "2026-01-10",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "car is not available", body["message"])
	})
}

func TestChangeStatusEndpoint(t *testing.T) {
	t.Run("Unknown Status Value", func(t *testing.T) {
		router := setupRouter(&stubService{})

		w, body := doJSON(t, router, "POST", "/api/booking/change-status", gin.H{
			"bookingId": "booking-1",
			"status":    "finished",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("Forbidden For Non Owner", func(t *testing.T) {
		router := setupRouter(&stubService{changeErr: booking.ErrNotBookingOwner})

		w, body := doJSON(t, router, "POST", "/api/booking/change-status", gin.H{
			"bookingId": "booking-1",
			"status":    "confirmed",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, false, body["success"])
	})
}
