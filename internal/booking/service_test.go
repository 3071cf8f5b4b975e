package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/car-rental-backend/internal/car"
)

// memRepository reimplements the repository contract on an in-memory
// slice so service behavior can be tested without a database. The mutex
// around CreateIfAvailable mirrors the row lock serializing concurrent
// writers on the same car.
type memRepository struct {
	mu       sync.Mutex
	bookings []*Booking
	nextID   int
}

func newMemRepository() *memRepository {
	return &memRepository{}
}

func (r *memRepository) CreateIfAvailable(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.CarID != b.CarID || existing.Status == StatusCancelled {
			continue
		}
		if Overlaps(existing.PickupDate, existing.ReturnDate, b.PickupDate, b.ReturnDate) {
			return ErrCarUnavailable
		}
	}

	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = time.Now()
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepository) ListByUser(_ context.Context, userID string) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].UserID == userID {
			result = append(result, r.bookings[i])
		}
	}
	return result, nil
}

func (r *memRepository) ListByOwner(_ context.Context, ownerID string) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].OwnerID == ownerID {
			result = append(result, r.bookings[i])
		}
	}
	return result, nil
}

func (r *memRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepository) HasOverlap(_ context.Context, carID string, pickup, ret time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.CarID != carID || b.Status == StatusCancelled {
			continue
		}
		if Overlaps(b.PickupDate, b.ReturnDate, pickup, ret) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepository) OwnerStats(_ context.Context, ownerID string, monthStart time.Time) (*OwnerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var st OwnerStats
	for _, b := range r.bookings {
		if b.OwnerID != ownerID {
			continue
		}
		st.TotalBookings++
		switch b.Status {
		case StatusPending:
			st.PendingBookings++
		case StatusConfirmed:
			st.ConfirmedBookings++
			if !b.CreatedAt.Before(monthStart) {
				st.MonthlyRevenue += b.Price
			}
		}
	}
	return &st, nil
}

func (r *memRepository) CancelStalePending(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, b := range r.bookings {
		if b.Status == StatusPending && b.PickupDate.Before(before) {
			b.Status = StatusCancelled
			n++
		}
	}
	return n, nil
}

// stubCarService serves cars from a fixed map. Only the read methods
// matter here.
type stubCarService struct {
	cars map[string]*car.Car
}

func (s *stubCarService) GetByID(_ context.Context, id string) (*car.Car, error) {
	c, ok := s.cars[id]
	if !ok {
		return nil, car.ErrNotFound
	}
	return c, nil
}

func (s *stubCarService) ListListed(_ context.Context, location string) ([]*car.Car, error) {
	var result []*car.Car
	for _, c := range s.cars {
		if c.IsAvailable && (location == "" || c.Location == location) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *stubCarService) CountByOwner(_ context.Context, ownerID string) (int, error) {
	n := 0
	for _, c := range s.cars {
		if c.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *stubCarService) Create(context.Context, string, car.CreateRequest) (*car.Car, error) {
	panic("not used")
}

func (s *stubCarService) ListByOwner(context.Context, string) ([]*car.Car, error) {
	panic("not used")
}

func (s *stubCarService) ListByIDs(context.Context, []string) ([]*car.Car, error) {
	panic("not used")
}

func (s *stubCarService) ToggleAvailability(context.Context, string, string) (*car.Car, error) {
	panic("not used")
}

func (s *stubCarService) AttachImage(context.Context, string, string, string) error {
	panic("not used")
}

func (s *stubCarService) Delete(context.Context, string, string) error {
	panic("not used")
}

func newTestService(cars map[string]*car.Car) (Service, *memRepository) {
	repo := newMemRepository()
	return NewService(repo, &stubCarService{cars: cars}), repo
}

func testCars() map[string]*car.Car {
	return map[string]*car.Car{
		"car-1": {
			ID:          "car-1",
			OwnerID:     "owner-1",
			Brand:       "Toyota",
			Model:       "Corolla",
			PricePerDay: 1000,
			Location:    "Madrid",
			IsAvailable: true,
		},
		"car-2": {
			ID:          "car-2",
			OwnerID:     "owner-1",
			Brand:       "Honda",
			Model:       "Civic",
			PricePerDay: 1500,
			Location:    "Madrid",
			IsAvailable: false,
		},
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Prices By Rental Days", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		b, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.March, 1),
			ReturnDate: date(2026, time.March, 4),
		})
		require.NoError(t, err)

		assert.Equal(t, 3000.0, b.Price, "3 days at 1000 per day")
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "owner-1", b.OwnerID, "owner copied from the car")
		assert.NotEmpty(t, b.ID)
	})

	t.Run("Same Day Rental Bills One Day", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		b, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.March, 1),
			ReturnDate: date(2026, time.March, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, b.Price)
	})

	t.Run("Rejects Overlapping Booking", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		_, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.January, 5),
			ReturnDate: date(2026, time.January, 10),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			UserID:     "user-2",
			CarID:      "car-1",
			PickupDate: date(2026, time.January, 8),
			ReturnDate: date(2026, time.January, 12),
		})
		assert.ErrorIs(t, err, ErrCarUnavailable)
	})

	t.Run("Allows Adjacent Booking", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		_, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.January, 5),
			ReturnDate: date(2026, time.January, 10),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			UserID:     "user-2",
			CarID:      "car-1",
			PickupDate: date(2026, time.January, 11),
			ReturnDate: date(2026, time.January, 15),
		})
		assert.NoError(t, err, "range starting the day after a return is free")
	})

	t.Run("Cancelled Booking Frees The Calendar", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		first, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.January, 5),
			ReturnDate: date(2026, time.January, 10),
		})
		require.NoError(t, err)

		_, err = svc.ChangeStatus(ctx, "owner-1", first.ID, StatusCancelled)
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			UserID:     "user-2",
			CarID:      "car-1",
			PickupDate: date(2026, time.January, 5),
			ReturnDate: date(2026, time.January, 10),
		})
		assert.NoError(t, err, "cancelled bookings do not block new ones")
	})

	t.Run("Unknown Car", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		_, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-999",
			PickupDate: date(2026, time.March, 1),
			ReturnDate: date(2026, time.March, 4),
		})
		assert.ErrorIs(t, err, ErrCarNotFound)
	})

	t.Run("Delisted Car", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		_, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-2",
			PickupDate: date(2026, time.March, 1),
			ReturnDate: date(2026, time.March, 4),
		})
		assert.ErrorIs(t, err, ErrCarUnavailable)
	})

	t.Run("Return Before Pickup", func(t *testing.T) {
		svc, _ := newTestService(testCars())

		_, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.March, 4),
			ReturnDate: date(2026, time.March, 1),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestConcurrentCreateSameRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(testCars())

	const attempts = 2
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.Create(ctx, CreateRequest{
				UserID:     fmt.Sprintf("user-%d", n),
				CarID:      "car-1",
				PickupDate: date(2026, time.May, 1),
				ReturnDate: date(2026, time.May, 5),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrCarUnavailable)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes, "exactly one request wins the range")
	assert.Equal(t, attempts-1, conflicts)
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *Booking) {
		svc, _ := newTestService(testCars())
		b, err := svc.Create(ctx, CreateRequest{
			UserID:     "user-1",
			CarID:      "car-1",
			PickupDate: date(2026, time.June, 1),
			ReturnDate: date(2026, time.June, 5),
		})
		require.NoError(t, err)
		return svc, b
	}

	t.Run("Owner Confirms", func(t *testing.T) {
		svc, b := setup(t)

		updated, err := svc.ChangeStatus(ctx, "owner-1", b.ID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)

		// The customer's own listing reflects the new status.
		list, err := svc.ListForUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, StatusConfirmed, list[0].Status)
	})

	t.Run("Owner Cancels", func(t *testing.T) {
		svc, b := setup(t)

		updated, err := svc.ChangeStatus(ctx, "owner-1", b.ID, StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
	})

	t.Run("Non Owner Rejected", func(t *testing.T) {
		svc, b := setup(t)

		_, err := svc.ChangeStatus(ctx, "owner-2", b.ID, StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotBookingOwner)
	})

	t.Run("Renter Cannot Change Status", func(t *testing.T) {
		svc, b := setup(t)

		_, err := svc.ChangeStatus(ctx, "user-1", b.ID, StatusCancelled)
		assert.ErrorIs(t, err, ErrNotBookingOwner)
	})

	t.Run("Confirmed Is Terminal", func(t *testing.T) {
		svc, b := setup(t)

		_, err := svc.ChangeStatus(ctx, "owner-1", b.ID, StatusConfirmed)
		require.NoError(t, err)

		_, err = svc.ChangeStatus(ctx, "owner-1", b.ID, StatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Repeated Cancel Rejected", func(t *testing.T) {
		svc, b := setup(t)

		_, err := svc.ChangeStatus(ctx, "owner-1", b.ID, StatusCancelled)
		require.NoError(t, err)

		_, err = svc.ChangeStatus(ctx, "owner-1", b.ID, StatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.ChangeStatus(ctx, "owner-1", "booking-999", StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSearchAvailable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(testCars())

	// Book car-1 for mid January.
	_, err := svc.Create(ctx, CreateRequest{
		UserID:     "user-1",
		CarID:      "car-1",
		PickupDate: date(2026, time.January, 5),
		ReturnDate: date(2026, time.January, 10),
	})
	require.NoError(t, err)

	t.Run("Conflicting Range Excludes The Car", func(t *testing.T) {
		cars, err := svc.SearchAvailable(ctx, "Madrid", date(2026, time.January, 8), date(2026, time.January, 12))
		require.NoError(t, err)
		assert.Empty(t, cars, "car-1 is booked, car-2 is delisted")
	})

	t.Run("Free Range Includes The Car", func(t *testing.T) {
		cars, err := svc.SearchAvailable(ctx, "Madrid", date(2026, time.February, 1), date(2026, time.February, 5))
		require.NoError(t, err)
		require.Len(t, cars, 1)
		assert.Equal(t, "car-1", cars[0].ID)
	})

	t.Run("Other Location Is Empty", func(t *testing.T) {
		cars, err := svc.SearchAvailable(ctx, "Barcelona", date(2026, time.February, 1), date(2026, time.February, 5))
		require.NoError(t, err)
		assert.Empty(t, cars)
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	repo := newMemRepository()
	svcImpl := &service{
		repo:       repo,
		carService: &stubCarService{cars: testCars()},
		now:        func() time.Time { return date(2026, time.July, 15) },
	}

	mk := func(userID string, pickup, ret time.Time) *Booking {
		b, err := svcImpl.Create(ctx, CreateRequest{
			UserID:     userID,
			CarID:      "car-1",
			PickupDate: pickup,
			ReturnDate: ret,
		})
		require.NoError(t, err)
		return b
	}

	confirmed := mk("user-1", date(2026, time.July, 1), date(2026, time.July, 3))
	_, err := svcImpl.ChangeStatus(ctx, "owner-1", confirmed.ID, StatusConfirmed)
	require.NoError(t, err)

	mk("user-2", date(2026, time.July, 10), date(2026, time.July, 12))
	cancelled := mk("user-3", date(2026, time.July, 20), date(2026, time.July, 22))
	_, err = svcImpl.ChangeStatus(ctx, "owner-1", cancelled.ID, StatusCancelled)
	require.NoError(t, err)

	data, err := svcImpl.Dashboard(ctx, "owner-1")
	require.NoError(t, err)

	assert.Equal(t, 2, data.TotalCars)
	assert.Equal(t, 3, data.TotalBookings)
	assert.Equal(t, 1, data.PendingBookings)
	assert.Equal(t, 1, data.CompletedBookings)
	assert.Equal(t, 2000.0, data.MonthlyRevenue, "only confirmed bookings count")
	assert.Len(t, data.RecentBookings, 3)
}

func TestExpireStalePending(t *testing.T) {
	ctx := context.Background()

	repo := newMemRepository()
	svcImpl := &service{
		repo:       repo,
		carService: &stubCarService{cars: testCars()},
		now:        func() time.Time { return date(2026, time.August, 10) },
	}

	stale, err := svcImpl.Create(ctx, CreateRequest{
		UserID:     "user-1",
		CarID:      "car-1",
		PickupDate: date(2026, time.August, 5),
		ReturnDate: date(2026, time.August, 8),
	})
	require.NoError(t, err)

	upcoming, err := svcImpl.Create(ctx, CreateRequest{
		UserID:     "user-2",
		CarID:      "car-1",
		PickupDate: date(2026, time.August, 20),
		ReturnDate: date(2026, time.August, 22),
	})
	require.NoError(t, err)

	n, err := svcImpl.ExpireStalePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	got, err = repo.GetByID(ctx, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}
