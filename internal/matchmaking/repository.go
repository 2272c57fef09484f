package matchmaking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *MatchRequest) error
	GetByID(ctx context.Context, id string) (*MatchRequest, error)
	ListByUser(ctx context.Context, userID string, box Box, page, pageSize int) ([]*MatchRequest, int, error)

	// HasPendingBetween reports whether a pending request already links the
	// two players, in either direction.
	HasPendingBetween(ctx context.Context, a, b string) (bool, error)

	// UpdateStatus is a compare-and-set from pending.
	UpdateStatus(ctx context.Context, id string, to Status) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const matchSelectColumns = `m.id, m.sender_id, s.first_name || ' ' || s.last_name,
	m.receiver_id, r.first_name || ' ' || r.last_name,
	m.booking_id, m.sport, m.skill_level, m.message, m.status,
	m.created_at, m.updated_at`

func scanMatch(row pgx.Row, m *MatchRequest, extra ...any) error {
	dest := []any{
		&m.ID, &m.SenderID, &m.SenderName,
		&m.ReceiverID, &m.ReceiverName,
		&m.BookingID, &m.Sport, &m.SkillLevel, &m.Message, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, m *MatchRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.match_requests").
		Columns("sender_id", "receiver_id", "booking_id", "sport", "skill_level", "message", "status").
		Values(m.SenderID, m.ReceiverID, m.BookingID, m.Sport, m.SkillLevel, m.Message, m.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create match request query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*MatchRequest, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM public.match_requests m
		JOIN public.users s ON m.sender_id = s.id
		JOIN public.users r ON m.receiver_id = r.id
		WHERE m.id = $1`, matchSelectColumns)

	var m MatchRequest
	if err := scanMatch(r.pool.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get match request failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string, box Box, page, pageSize int) ([]*MatchRequest, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(matchSelectColumns, "count(*) OVER() as total_count").
		From("public.match_requests m").
		Join("public.users s ON m.sender_id = s.id").
		Join("public.users r ON m.receiver_id = r.id")

	if box == BoxSent {
		query = query.Where(squirrel.Eq{"m.sender_id": userID})
	} else {
		query = query.Where(squirrel.Eq{"m.receiver_id": userID})
	}

	query = query.OrderBy("m.created_at DESC")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list match requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list match requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*MatchRequest
	var total int
	for rows.Next() {
		var m MatchRequest
		if err := scanMatch(rows, &m, &total); err != nil {
			return nil, 0, fmt.Errorf("scan match request failed: %w", err)
		}
		requests = append(requests, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate match requests failed: %w", err)
	}

	return requests, total, nil
}

func (r *pgxRepository) HasPendingBetween(ctx context.Context, a, b string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.match_requests
			WHERE status = 'pending'
			  AND ((sender_id = $1 AND receiver_id = $2)
			    OR (sender_id = $2 AND receiver_id = $1))
		)`, a, b,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending match request failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, to Status) (bool, error) {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.match_requests
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = 'pending'`,
		to, id)
	if err != nil {
		return false, fmt.Errorf("update match request status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
