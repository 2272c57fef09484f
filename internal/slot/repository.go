package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// BulkCreate inserts the windows for a court, silently skipping windows
	// that already exist. It returns the full slot list afterwards.
	BulkCreate(ctx context.Context, courtID string, windows []Window) ([]*Slot, error)
	GetByID(ctx context.Context, id string) (*Slot, error)
	ListByCourt(ctx context.Context, courtID string) ([]*Slot, error)
	Delete(ctx context.Context, id string) error

	// HasLiveBookings reports whether any pending or confirmed booking still
	// references the slot.
	HasLiveBookings(ctx context.Context, slotID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) BulkCreate(ctx context.Context, courtID string, windows []Window) ([]*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.slots").
		Columns("court_id", "start_time", "end_time")
	for _, w := range windows {
		insert = insert.Values(courtID, w.StartTime, w.EndTime)
	}
	query, args, err := insert.
		Suffix("ON CONFLICT (court_id, start_time, end_time) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bulk create slots query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("bulk create slots failed: %w", err)
	}

	return r.ListByCourt(ctx, courtID)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	var s Slot
	err := r.pool.QueryRow(ctx,
		`SELECT id, court_id, start_time, end_time, is_active, created_at
		 FROM public.slots WHERE id = $1`, id,
	).Scan(&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) ListByCourt(ctx context.Context, courtID string) ([]*Slot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, court_id, start_time, end_time, is_active, created_at
		 FROM public.slots
		 WHERE court_id = $1 AND is_active
		 ORDER BY start_time`, courtID)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots failed: %w", err)
	}
	return slots, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasLiveBookings(ctx context.Context, slotID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE slot_id = $1 AND status IN ('pending', 'confirmed')
		)`, slotID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slot bookings failed: %w", err)
	}
	return exists, nil
}
