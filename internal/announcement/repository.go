package announcement

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Announcement) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.announcements").
		Columns("title", "content").
		Values(a.Title, a.Content).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create announcement query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, created_at, updated_at
		 FROM public.announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get announcement failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "title", "content", "created_at", "updated_at",
		"count(*) OVER() as total_count").
		From("public.announcements")

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": like},
			squirrel.ILike{"content": like},
		})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list announcements query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements failed: %w", err)
	}
	defer rows.Close()

	var result []*Announcement
	var total int
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan announcement failed: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate announcements failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Announcement) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.announcements").
		Set("title", a.Title).
		Set("content", a.Content).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update announcement query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
