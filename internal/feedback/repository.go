package feedback

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	ListRecent(ctx context.Context, limit int) ([]*Feedback, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *Feedback) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.feedback").
		Columns("name", "email", "rating", "message").
		Values(f.Name, f.Email, f.Rating, f.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create feedback query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt)
}

func (r *pgxRepository) ListRecent(ctx context.Context, limit int) ([]*Feedback, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "email", "rating", "message", "created_at").
		From("public.feedback").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list feedback query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback failed: %w", err)
	}
	defer rows.Close()

	var result []*Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Rating, &f.Message, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback failed: %w", err)
		}
		result = append(result, &f)
	}

	return result, rows.Err()
}
