package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, court *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, court *Court) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status Status) error
	AppendImage(ctx context.Context, id, path string) error

	// HasLiveBookings reports whether any pending or confirmed booking
	// exists for the court. Used as the deletion guard.
	HasLiveBookings(ctx context.Context, id string) (bool, error)

	CountByStatus(ctx context.Context) (map[Status]int, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courts").
		Columns("owner_id", "name", "description", "address", "city", "state",
			"zip_code", "sport", "price_per_hour", "amenities", "images", "status").
		Values(c.OwnerID, c.Name, c.Description, c.Address, c.City, c.State,
			c.ZipCode, c.Sport, c.PricePerHour, c.Amenities, c.Images, c.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

const courtSelectColumns = `
	c.id, c.owner_id, u.first_name || ' ' || u.last_name, c.name, c.description,
	c.address, c.city, c.state, c.zip_code, c.sport, c.price_per_hour,
	c.amenities, c.images, c.status, c.created_at, c.updated_at
`

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query := `
		SELECT ` + courtSelectColumns + `
		FROM public.courts c
		JOIN public.users u ON c.owner_id = u.id
		WHERE c.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)

	var c Court
	if err := row.Scan(
		&c.ID, &c.OwnerID, &c.OwnerName, &c.Name, &c.Description,
		&c.Address, &c.City, &c.State, &c.ZipCode, &c.Sport, &c.PricePerHour,
		&c.Amenities, &c.Images, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"c.id", "c.owner_id", "u.first_name || ' ' || u.last_name", "c.name", "c.description",
		"c.address", "c.city", "c.state", "c.zip_code", "c.sport", "c.price_per_hour",
		"c.amenities", "c.images", "c.status", "c.created_at", "c.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.courts c").
		Join("public.users u ON c.owner_id = u.id")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"c.owner_id": filter.OwnerID})
	}
	if filter.Sport != "" {
		query = query.Where(squirrel.Eq{"c.sport": filter.Sport})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"c.city": "%" + filter.City + "%"})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"c.status": filter.Status})
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"c.price_per_hour": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"c.price_per_hour": *filter.MaxPrice})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.name": like},
			squirrel.ILike{"c.address": like},
			squirrel.ILike{"c.city": like},
			squirrel.ILike{"c.description": like},
		})
	}

	query = query.OrderBy("c.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.OwnerName, &c.Name, &c.Description,
			&c.Address, &c.City, &c.State, &c.ZipCode, &c.Sport, &c.PricePerHour,
			&c.Amenities, &c.Images, &c.Status, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &c)
	}

	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courts").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("address", c.Address).
		Set("city", c.City).
		Set("state", c.State).
		Set("zip_code", c.ZipCode).
		Set("sport", c.Sport).
		Set("price_per_hour", c.PricePerHour).
		Set("amenities", c.Amenities).
		Set("images", c.Images).
		Set("status", c.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.courts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE public.courts SET status = $1, updated_at = now() WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("set court status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AppendImage(ctx context.Context, id, path string) error {
	const query = `UPDATE public.courts SET images = array_append(images, $1), updated_at = now() WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("append court image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasLiveBookings(ctx context.Context, id string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE court_id = $1 AND status IN ('pending', 'confirmed')
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check live bookings failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	const query = `SELECT status, count(*) FROM public.courts GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count courts by status failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var s Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, fmt.Errorf("scan court status count failed: %w", err)
		}
		counts[s] = n
	}
	return counts, nil
}

func (r *pgxRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM public.courts WHERE owner_id = $1`, ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count owner courts failed: %w", err)
	}
	return count, nil
}
