package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OwnerStats aggregates an owner's booking figures for the dashboard.
type OwnerStats struct {
	TotalBookings     int
	PendingBookings   int
	ConfirmedBookings int
	MonthlyRevenue    float64
}

type Repository interface {
	// CreateIfAvailable inserts the booking only if the requested date
	// range is free. The car row is locked for the duration of the check
	// and insert, so two concurrent requests for overlapping ranges on the
	// same car serialize and exactly one succeeds.
	// Returns ErrCarNotFound if the car row is gone, ErrCarUnavailable on
	// a date conflict.
	CreateIfAvailable(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// HasOverlap checks if any booking with status other than cancelled
	// conflicts with the inclusive date range [pickup, ret] on the car.
	HasOverlap(ctx context.Context, carID string, pickup, ret time.Time) (bool, error)

	OwnerStats(ctx context.Context, ownerID string, monthStart time.Time) (*OwnerStats, error)

	// CancelStalePending cancels pending bookings whose pickup date is
	// strictly before the given day. Returns the number of rows changed.
	CancelStalePending(ctx context.Context, before time.Time) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx, letting the
// overlap check run inside or outside a transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *pgxRepository) CreateIfAvailable(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the car row so concurrent writers for the same car queue up
	// behind the availability check.
	var carID string
	err = tx.QueryRow(ctx, `SELECT id FROM public.cars WHERE id = $1 FOR UPDATE`, b.CarID).Scan(&carID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCarNotFound
		}
		return fmt.Errorf("lock car row failed: %w", err)
	}

	conflict, err := hasOverlap(ctx, tx, b.CarID, b.PickupDate, b.ReturnDate)
	if err != nil {
		return err
	}
	if conflict {
		return ErrCarUnavailable
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("car_id", "owner_id", "user_id", "pickup_date", "return_date", "price", "status").
		Values(b.CarID, b.OwnerID, b.UserID, b.PickupDate, b.ReturnDate, b.Price, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) HasOverlap(ctx context.Context, carID string, pickup, ret time.Time) (bool, error) {
	return hasOverlap(ctx, r.pool, carID, pickup, ret)
}

func hasOverlap(ctx context.Context, q queryRower, carID string, pickup, ret time.Time) (bool, error) {
	// Conflict rule:
	// 1. Same car
	// 2. Status is NOT cancelled (cancelled bookings free the calendar)
	// 3. Dates overlap inclusively:
	//    existing.pickup <= requested.return AND existing.return >= requested.pickup
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"car_id": carID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.LtOrEq{"pickup_date": ret}).
		Where(squirrel.GtOrEq{"return_date": pickup})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

const bookingSelect = `
	SELECT
		b.id, b.car_id, b.owner_id, b.user_id,
		b.pickup_date, b.return_date, b.price, b.status, b.created_at,
		c.brand, c.model, c.year, c.category, c.seating_capacity, c.location, c.image_id,
		u.name, u.email
	FROM public.bookings b
	JOIN public.cars c ON b.car_id = c.id
	JOIN public.users u ON b.user_id = u.id
`

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := bookingSelect + " WHERE b.id = $1"

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	query := bookingSelect + " WHERE b.user_id = $1 ORDER BY b.created_at DESC"
	return r.queryBookings(ctx, query, userID)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Booking, error) {
	query := bookingSelect + " WHERE b.owner_id = $1 ORDER BY b.created_at DESC"
	return r.queryBookings(ctx, query, ownerID)
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) OwnerStats(ctx context.Context, ownerID string, monthStart time.Time) (*OwnerStats, error) {
	const query = `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'confirmed'),
			COALESCE(sum(price) FILTER (WHERE status = 'confirmed' AND created_at >= $2), 0)
		FROM public.bookings
		WHERE owner_id = $1
	`

	var st OwnerStats
	if err := r.pool.QueryRow(ctx, query, ownerID, monthStart).Scan(
		&st.TotalBookings, &st.PendingBookings, &st.ConfirmedBookings, &st.MonthlyRevenue,
	); err != nil {
		return nil, fmt.Errorf("owner stats failed: %w", err)
	}
	return &st, nil
}

func (r *pgxRepository) CancelStalePending(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		UPDATE public.bookings
		SET status = 'cancelled'
		WHERE status = 'pending' AND pickup_date < $1
	`

	ct, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("cancel stale pending bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.CarID, &b.OwnerID, &b.UserID,
		&b.PickupDate, &b.ReturnDate, &b.Price, &b.Status, &b.CreatedAt,
		&b.Car.Brand, &b.Car.Model, &b.Car.Year, &b.Car.Category,
		&b.Car.SeatingCapacity, &b.Car.Location, &b.Car.ImageID,
		&b.UserName, &b.UserEmail,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
