package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create runs the conflict check and the insert in a single transaction,
	// serialized per court by locking the court row.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus is a compare-and-set: the row is updated only if its
	// current status is one of from. It reports whether a row changed.
	UpdateStatus(ctx context.Context, id string, from []Status, to Status) (bool, error)

	// SetOpponent assigns an opponent to a booking that has none yet.
	SetOpponent(ctx context.Context, id, opponentID string) (bool, error)

	StatsByOwner(ctx context.Context, ownerID string) ([]StatusCount, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)

	// RevenueByOwner sums hours × price over the owner's confirmed and
	// completed bookings.
	RevenueByOwner(ctx context.Context, ownerID string) (float64, error)

	// BookedIntervals returns the [start, end) pairs of live bookings for a
	// court on a date, ordered by start time.
	BookedIntervals(ctx context.Context, courtID string, date time.Time) ([][2]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingSelectColumns = `b.id, b.court_id, c.name, c.sport, c.price_per_hour, c.owner_id,
	b.player_id, u.first_name || ' ' || u.last_name,
	b.opponent_id, b.slot_id, b.date, b.start_time, b.end_time,
	b.needs_opponent, b.status, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.CourtID, &b.CourtName, &b.CourtSport, &b.PricePerHour, &b.OwnerID,
		&b.PlayerID, &b.PlayerName,
		&b.OpponentID, &b.SlotID, &b.Date, &b.StartTime, &b.EndTime,
		&b.NeedsOpponent, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the court row first. All concurrent creates for the same court
	// queue behind this lock, so the overlap check below sees every booking
	// committed by earlier holders.
	var (
		courtStatus string
		courtName   string
		courtSport  string
		price       float64
	)
	err = tx.QueryRow(ctx,
		`SELECT owner_id, name, sport, price_per_hour, status
		 FROM public.courts WHERE id = $1 FOR UPDATE`, b.CourtID,
	).Scan(&b.OwnerID, &courtName, &courtSport, &price, &courtStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCourtNotFound
		}
		return fmt.Errorf("lock court row failed: %w", err)
	}
	if courtStatus != "active" {
		return ErrCourtNotActive
	}

	// Half-open interval overlap: [start, end) ranges collide when each
	// starts before the other ends. Touching ranges pass.
	var conflict bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE court_id = $1
			  AND date = $2
			  AND status IN ('pending', 'confirmed')
			  AND start_time < $4
			  AND end_time > $3
		)`, b.CourtID, b.Date, b.StartTime, b.EndTime,
	).Scan(&conflict)
	if err != nil {
		return fmt.Errorf("check booking overlap failed: %w", err)
	}
	if conflict {
		return ErrTimeConflict
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("court_id", "player_id", "opponent_id", "slot_id", "date",
			"start_time", "end_time", "needs_opponent", "status").
		Values(b.CourtID, b.PlayerID, b.OpponentID, b.SlotID, b.Date,
			b.StartTime, b.EndTime, b.NeedsOpponent, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			// Belt-and-braces constraint on the table itself, should be
			// unreachable behind the court lock.
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	b.CourtName = courtName
	b.CourtSport = courtSport
	b.PricePerHour = price

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM public.bookings b
		JOIN public.courts c ON b.court_id = c.id
		JOIN public.users u ON b.player_id = u.id
		WHERE b.id = $1`, bookingSelectColumns)

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingSelectColumns, "count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		Join("public.users u ON b.player_id = u.id")

	if filter.PlayerID != "" {
		query = query.Where(squirrel.Eq{"b.player_id": filter.PlayerID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"c.owner_id": filter.OwnerID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.Date != nil {
		query = query.Where(squirrel.Eq{"b.date": *filter.Date})
	}

	query = query.OrderBy("b.date DESC", "b.start_time DESC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from []Status, to Status) (bool, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	ct, err := r.pool.Exec(ctx,
		`UPDATE public.bookings
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = ANY($3)`,
		to, id, states)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) SetOpponent(ctx context.Context, id, opponentID string) (bool, error) {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.bookings
		 SET opponent_id = $1, needs_opponent = false, updated_at = now()
		 WHERE id = $2 AND opponent_id IS NULL`,
		opponentID, id)
	if err != nil {
		return false, fmt.Errorf("set booking opponent failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) StatsByOwner(ctx context.Context, ownerID string) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.status, count(*)
		 FROM public.bookings b
		 JOIN public.courts c ON b.court_id = c.id
		 WHERE c.owner_id = $1
		 GROUP BY b.status`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("owner booking stats failed: %w", err)
	}
	defer rows.Close()

	var stats []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan booking stats failed: %w", err)
		}
		stats = append(stats, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking stats failed: %w", err)
	}
	return stats, nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, count(*) FROM public.bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count bookings failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan booking count failed: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking counts failed: %w", err)
	}
	return counts, nil
}

func (r *pgxRepository) RevenueByOwner(ctx context.Context, ownerID string) (float64, error) {
	// start_time/end_time are zero-padded "HH:mm", castable to time.
	var revenue float64
	err := r.pool.QueryRow(ctx,
		`SELECT coalesce(sum(
			extract(epoch FROM (b.end_time::time - b.start_time::time)) / 3600 * c.price_per_hour
		 ), 0)
		 FROM public.bookings b
		 JOIN public.courts c ON b.court_id = c.id
		 WHERE c.owner_id = $1 AND b.status IN ('confirmed', 'completed')`,
		ownerID,
	).Scan(&revenue)
	if err != nil {
		return 0, fmt.Errorf("owner revenue failed: %w", err)
	}
	return revenue, nil
}

// BookedIntervals returns the start/end pairs of live bookings for a court on
// a date, ordered by start time. The slot availability view is derived from
// this set.
func (r *pgxRepository) BookedIntervals(ctx context.Context, courtID string, date time.Time) ([][2]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT start_time, end_time FROM public.bookings
		 WHERE court_id = $1 AND date = $2 AND status IN ('pending', 'confirmed')
		 ORDER BY start_time`, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("booked intervals failed: %w", err)
	}
	defer rows.Close()

	var intervals [][2]string
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("scan booked interval failed: %w", err)
		}
		intervals = append(intervals, [2]string{start, end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked intervals failed: %w", err)
	}
	return intervals, nil
}
