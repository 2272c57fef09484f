package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, receiverID string) error
	MarkAllRead(ctx context.Context, receiverID string) error
	UnreadCount(ctx context.Context, receiverID string) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, n *Notification) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.notifications").
		Columns("receiver_id", "sender_id", "type", "title", "message", "data").
		Values(n.ReceiverID, n.SenderID, n.Type, n.Title, n.Message, n.Data).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create notification query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.CreatedAt)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "receiver_id", "sender_id", "type", "title", "message", "data",
		"is_read", "created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.notifications").
		Where(squirrel.Eq{"receiver_id": filter.ReceiverID})

	if filter.IsRead != nil {
		query = query.Where(squirrel.Eq{"is_read": *filter.IsRead})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notifications query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications failed: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	var total int

	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID, &n.ReceiverID, &n.SenderID, &n.Type, &n.Title, &n.Message,
			&n.Data, &n.IsRead, &n.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notification failed: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, total, nil
}

func (r *pgxRepository) MarkRead(ctx context.Context, id, receiverID string) error {
	const query = `
		UPDATE public.notifications
		SET is_read = true
		WHERE id = $1 AND receiver_id = $2
	`

	ct, err := r.pool.Exec(ctx, query, id, receiverID)
	if err != nil {
		return fmt.Errorf("mark notification read failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) MarkAllRead(ctx context.Context, receiverID string) error {
	const query = `
		UPDATE public.notifications
		SET is_read = true
		WHERE receiver_id = $1 AND is_read = false
	`

	if _, err := r.pool.Exec(ctx, query, receiverID); err != nil {
		return fmt.Errorf("mark all notifications read failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UnreadCount(ctx context.Context, receiverID string) (int, error) {
	const query = `
		SELECT count(*) FROM public.notifications
		WHERE receiver_id = $1 AND is_read = false
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, receiverID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("count unread notifications failed: %w", err)
	}
	return count, nil
}
