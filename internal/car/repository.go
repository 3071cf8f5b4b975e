package car

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const carColumns = "id, owner_id, brand, model, year, price_per_day, category, transmission, fuel_type, seating_capacity, location, description, image_id, is_available, created_at"

type Repository interface {
	Create(ctx context.Context, c *Car) error
	GetByID(ctx context.Context, id string) (*Car, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Car, error)
	ListListed(ctx context.Context, location string) ([]*Car, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Car, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	SetImage(ctx context.Context, id, fileID string) error

	// HasActiveBookings reports whether the car has any non-cancelled
	// booking that has not yet ended. Such cars cannot be deleted.
	HasActiveBookings(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Car) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.cars").
		Columns("owner_id", "brand", "model", "year", "price_per_day", "category",
			"transmission", "fuel_type", "seating_capacity", "location", "description",
			"image_id", "is_available").
		Values(c.OwnerID, c.Brand, c.Model, c.Year, c.PricePerDay, c.Category,
			c.Transmission, c.FuelType, c.SeatingCapacity, c.Location, c.Description,
			c.ImageID, c.IsAvailable).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create car query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Car, error) {
	query := fmt.Sprintf("SELECT %s FROM public.cars WHERE id = $1", carColumns)

	row := r.pool.QueryRow(ctx, query, id)

	c, err := scanCar(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get car failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Car, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM public.cars
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, carColumns)

	return r.queryCars(ctx, query, ownerID)
}

func (r *pgxRepository) ListListed(ctx context.Context, location string) ([]*Car, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(carColumns).
		From("public.cars").
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("created_at DESC")

	// Location matched exactly against the stored listing value.
	if location != "" {
		builder = builder.Where(squirrel.Eq{"location": location})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cars query failed: %w", err)
	}

	return r.queryCars(ctx, query, args...)
}

func (r *pgxRepository) ListByIDs(ctx context.Context, ids []string) ([]*Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(carColumns).
		From("public.cars").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cars by ids query failed: %w", err)
	}

	return r.queryCars(ctx, query, args...)
}

func (r *pgxRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `SELECT count(*) FROM public.cars WHERE owner_id = $1`

	var n int
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cars failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	const query = `
		UPDATE public.cars
		SET is_available = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, available, id)
	if err != nil {
		return fmt.Errorf("set car availability failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetImage(ctx context.Context, id, fileID string) error {
	const query = `
		UPDATE public.cars
		SET image_id = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, fileID, id)
	if err != nil {
		return fmt.Errorf("set car image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasActiveBookings(ctx context.Context, id string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE car_id = $1
			  AND status <> 'cancelled'
			  AND return_date >= CURRENT_DATE
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active bookings failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.cars WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete car failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) queryCars(ctx context.Context, query string, args ...any) ([]*Car, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cars failed: %w", err)
	}
	defer rows.Close()

	var cars []*Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car failed: %w", err)
		}
		cars = append(cars, c)
	}

	return cars, rows.Err()
}

func scanCar(row pgx.Row) (*Car, error) {
	var c Car
	if err := row.Scan(
		&c.ID, &c.OwnerID, &c.Brand, &c.Model, &c.Year, &c.PricePerDay,
		&c.Category, &c.Transmission, &c.FuelType, &c.SeatingCapacity,
		&c.Location, &c.Description, &c.ImageID, &c.IsAvailable, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
