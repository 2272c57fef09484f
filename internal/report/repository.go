package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter Filter) ([]*Report, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	CountByStatus(ctx context.Context, status Status) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const reportSelectColumns = `r.id, r.reporter_id, u.first_name || ' ' || u.last_name,
	r.reported_user_id, r.reported_court_id, r.reported_booking_id,
	r.type, r.message, r.status, r.created_at, r.updated_at`

func scanReport(row pgx.Row, rep *Report, extra ...any) error {
	dest := []any{
		&rep.ID, &rep.ReporterID, &rep.ReporterName,
		&rep.ReportedUserID, &rep.ReportedCourtID, &rep.ReportedBookingID,
		&rep.Type, &rep.Message, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, rep *Report) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reports").
		Columns("reporter_id", "reported_user_id", "reported_court_id", "reported_booking_id",
			"type", "message", "status").
		Values(rep.ReporterID, rep.ReportedUserID, rep.ReportedCourtID, rep.ReportedBookingID,
			rep.Type, rep.Message, rep.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create report query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM public.reports r
		JOIN public.users u ON r.reporter_id = u.id
		WHERE r.id = $1`, reportSelectColumns)

	var rep Report
	if err := scanReport(r.pool.QueryRow(ctx, query, id), &rep); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get report failed: %w", err)
	}
	return &rep, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(reportSelectColumns, "count(*) OVER() as total_count").
		From("public.reports r").
		Join("public.users u ON r.reporter_id = u.id")

	if filter.ReporterID != "" {
		query = query.Where(squirrel.Eq{"r.reporter_id": filter.ReporterID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"r.type": filter.Type})
	}

	query = query.OrderBy("r.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reports query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports failed: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	var total int
	for rows.Next() {
		var rep Report
		if err := scanReport(rows, &rep, &total); err != nil {
			return nil, 0, fmt.Errorf("scan report failed: %w", err)
		}
		reports = append(reports, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reports failed: %w", err)
	}

	return reports, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.reports SET status = $1, updated_at = now() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("update report status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM public.reports WHERE status = $1`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reports failed: %w", err)
	}
	return count, nil
}
