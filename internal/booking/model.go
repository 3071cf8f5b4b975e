package booking

import (
	"net/http"
	"time"

	"github.com/rentwheels/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrCarNotFound       = apperror.New(http.StatusNotFound, "car not found")
	ErrCarUnavailable    = apperror.New(http.StatusConflict, "car is not available")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "return date must not be before pickup date")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "booking status cannot change from its current state")
	ErrNotBookingOwner   = apperror.New(http.StatusForbidden, "only the car owner can update this booking")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus converts a wire string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether a booking may move from s to target.
// Pending is the only non-terminal state: it may be confirmed or cancelled.
// Repeats (pending -> pending) and transitions out of confirmed/cancelled
// are rejected.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && (target == StatusConfirmed || target == StatusCancelled)
}

// Booking is a rental reservation of a car for an inclusive range of
// calendar days. OwnerID is the car owner's id denormalized at creation so
// owner-side queries and the status-change authorization check need no join.
// Price is computed at creation and never changes afterwards.
type Booking struct {
	ID         string
	CarID      string
	OwnerID    string
	UserID     string
	PickupDate time.Time
	ReturnDate time.Time
	Price      float64
	Status     Status
	CreatedAt  time.Time

	// Display joins for listing views.
	Car       CarSummary
	UserName  string
	UserEmail string
}

// CarSummary is the slice of car attributes listings display next to a
// booking.
type CarSummary struct {
	Brand           string
	Model           string
	Year            int
	Category        string
	SeatingCapacity int
	Location        string
	ImageID         *string
}

// Overlaps implements the inclusive interval intersection test on calendar
// dates: [aStart, aEnd] and [bStart, bEnd] conflict when
// aStart <= bEnd AND aEnd >= bStart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// RentalDays returns the billable duration for a pickup/return pair:
// the ceiling of the elapsed time in days, floored at one day so a same-day
// rental is never free.
func RentalDays(pickup, ret time.Time) int {
	days := int(ret.Sub(pickup).Hours() / 24)
	if ret.Sub(pickup) > time.Duration(days)*24*time.Hour {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
