package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rentwheels/car-rental-backend/internal/car"
)

// CreateRequest carries everything needed to book a car. UserID is the
// authenticated requester, passed explicitly by the handler.
type CreateRequest struct {
	UserID     string
	CarID      string
	PickupDate time.Time
	ReturnDate time.Time
}

// DashboardData is the owner dashboard payload.
type DashboardData struct {
	TotalCars         int
	TotalBookings     int
	PendingBookings   int
	CompletedBookings int
	RecentBookings    []*Booking
	MonthlyRevenue    float64
}

type Service interface {
	// CheckAvailability reports whether the car is free for every day of
	// the inclusive range [pickup, ret].
	CheckAvailability(ctx context.Context, carID string, pickup, ret time.Time) (bool, error)

	// SearchAvailable returns the listed cars at the location that are
	// free for the requested range.
	SearchAvailable(ctx context.Context, location string, pickup, ret time.Time) ([]*car.Car, error)

	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	ListForUser(ctx context.Context, userID string) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*Booking, error)

	// ChangeStatus applies a state-machine transition on behalf of
	// requesterID, who must be the car owner recorded on the booking.
	ChangeStatus(ctx context.Context, requesterID, bookingID string, newStatus Status) (*Booking, error)

	Dashboard(ctx context.Context, ownerID string) (*DashboardData, error)

	// ExpireStalePending cancels pending bookings whose pickup day has
	// already passed without a confirmation.
	ExpireStalePending(ctx context.Context) (int64, error)
}

type service struct {
	repo       Repository
	carService car.Service

	now func() time.Time
}

func NewService(repo Repository, carService car.Service) Service {
	return &service{
		repo:       repo,
		carService: carService,
		now:        time.Now,
	}
}

func (s *service) CheckAvailability(ctx context.Context, carID string, pickup, ret time.Time) (bool, error) {
	conflict, err := s.repo.HasOverlap(ctx, carID, pickup, ret)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *service) SearchAvailable(ctx context.Context, location string, pickup, ret time.Time) ([]*car.Car, error) {
	if err := validateRange(pickup, ret); err != nil {
		return nil, err
	}

	candidates, err := s.carService.ListListed(ctx, location)
	if err != nil {
		return nil, err
	}

	var available []*car.Car
	for _, c := range candidates {
		free, err := s.CheckAvailability(ctx, c.ID, pickup, ret)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, c)
		}
	}
	return available, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validateRange(req.PickupDate, req.ReturnDate); err != nil {
		return nil, err
	}

	c, err := s.carService.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	// A delisted car cannot take new bookings.
	if !c.IsAvailable {
		return nil, ErrCarUnavailable
	}

	price := c.PricePerDay * float64(RentalDays(req.PickupDate, req.ReturnDate))

	b := &Booking{
		CarID:      req.CarID,
		OwnerID:    c.OwnerID,
		UserID:     req.UserID,
		PickupDate: req.PickupDate,
		ReturnDate: req.ReturnDate,
		Price:      price,
		Status:     StatusPending,
	}

	// Availability check and insert run atomically in the repository;
	// checking here first would leave the race window open.
	if err := s.repo.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string) ([]*Booking, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) ChangeStatus(ctx context.Context, requesterID, bookingID string, newStatus Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.OwnerID != requesterID {
		return nil, ErrNotBookingOwner
	}

	if !b.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	b.Status = newStatus
	return b, nil
}

func (s *service) Dashboard(ctx context.Context, ownerID string) (*DashboardData, error) {
	totalCars, err := s.carService.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := s.repo.OwnerStats(ctx, ownerID, monthStart)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(recent) > 3 {
		recent = recent[:3]
	}

	return &DashboardData{
		TotalCars:         totalCars,
		TotalBookings:     stats.TotalBookings,
		PendingBookings:   stats.PendingBookings,
		CompletedBookings: stats.ConfirmedBookings,
		RecentBookings:    recent,
		MonthlyRevenue:    stats.MonthlyRevenue,
	}, nil
}

func (s *service) ExpireStalePending(ctx context.Context) (int64, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.CancelStalePending(ctx, today)
}

func validateRange(pickup, ret time.Time) error {
	if pickup.IsZero() || ret.IsZero() || ret.Before(pickup) {
		return ErrInvalidDateRange
	}
	return nil
}
