package tournament

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Tournament) error
	GetByID(ctx context.Context, id string) (*Tournament, error)
	List(ctx context.Context, filter Filter) ([]*Tournament, int, error)
	Update(ctx context.Context, t *Tournament) error
	Delete(ctx context.Context, id string) error

	// Join registers a player, enforcing capacity and the unique
	// participant constraint in a single transaction locking the
	// tournament row.
	Join(ctx context.Context, tournamentID, playerID string) (*Tournament, error)
	Leave(ctx context.Context, tournamentID, playerID string) error
	IsParticipant(ctx context.Context, tournamentID, playerID string) (bool, error)
	HasParticipants(ctx context.Context, tournamentID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const tournamentColumns = `id, name, description, sport, skill_level, start_date, end_date,
	max_participants, current_participants, status, created_at, updated_at`

func scanTournament(row pgx.Row, t *Tournament, extra ...any) error {
	dest := []any{
		&t.ID, &t.Name, &t.Description, &t.Sport, &t.SkillLevel, &t.StartDate, &t.EndDate,
		&t.MaxParticipants, &t.CurrentParticipants, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, t *Tournament) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.tournaments").
		Columns("name", "description", "sport", "skill_level", "start_date", "end_date",
			"max_participants", "status").
		Values(t.Name, t.Description, t.Sport, t.SkillLevel, t.StartDate, t.EndDate,
			t.MaxParticipants, t.Status).
		Suffix("RETURNING id, current_participants, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create tournament query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.CurrentParticipants, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Tournament, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.tournaments WHERE id = $1`, tournamentColumns)

	var t Tournament
	if err := scanTournament(r.pool.QueryRow(ctx, query, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tournament failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Tournament, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(tournamentColumns, "count(*) OVER() as total_count").
		From("public.tournaments")

	if filter.Sport != "" {
		query = query.Where(squirrel.Eq{"sport": filter.Sport})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("start_date ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list tournaments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tournaments failed: %w", err)
	}
	defer rows.Close()

	var tournaments []*Tournament
	var total int
	for rows.Next() {
		var t Tournament
		if err := scanTournament(rows, &t, &total); err != nil {
			return nil, 0, fmt.Errorf("scan tournament failed: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tournaments failed: %w", err)
	}

	return tournaments, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Tournament) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.tournaments").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("sport", t.Sport).
		Set("skill_level", t.SkillLevel).
		Set("start_date", t.StartDate).
		Set("end_date", t.EndDate).
		Set("max_participants", t.MaxParticipants).
		Set("status", t.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update tournament query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tournament failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Join(ctx context.Context, tournamentID, playerID string) (*Tournament, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin join tournament tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the tournament row so concurrent joins serialize and cannot
	// oversubscribe the capacity.
	query := fmt.Sprintf(`SELECT %s FROM public.tournaments WHERE id = $1 FOR UPDATE`, tournamentColumns)

	var t Tournament
	if err := scanTournament(tx.QueryRow(ctx, query, tournamentID), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock tournament row failed: %w", err)
	}

	if t.Status != StatusUpcoming {
		return nil, ErrNotJoinable
	}
	if t.CurrentParticipants >= t.MaxParticipants {
		return nil, ErrFull
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO public.tournament_participants (tournament_id, player_id) VALUES ($1, $2)`,
		tournamentID, playerID,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("insert tournament participant failed: %w", err)
	}

	if err := tx.QueryRow(ctx,
		`UPDATE public.tournaments
		 SET current_participants = current_participants + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING current_participants`, tournamentID,
	).Scan(&t.CurrentParticipants); err != nil {
		return nil, fmt.Errorf("bump tournament participants failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit join tournament tx failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) Leave(ctx context.Context, tournamentID, playerID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin leave tournament tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`DELETE FROM public.tournament_participants
		 WHERE tournament_id = $1 AND player_id = $2`,
		tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("delete tournament participant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotParticipant
	}

	if _, err := tx.Exec(ctx,
		`UPDATE public.tournaments
		 SET current_participants = current_participants - 1, updated_at = now()
		 WHERE id = $1`, tournamentID,
	); err != nil {
		return fmt.Errorf("drop tournament participants failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit leave tournament tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) IsParticipant(ctx context.Context, tournamentID, playerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.tournament_participants
			WHERE tournament_id = $1 AND player_id = $2
		)`, tournamentID, playerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tournament participant failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) HasParticipants(ctx context.Context, tournamentID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.tournament_participants WHERE tournament_id = $1
		)`, tournamentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tournament participants failed: %w", err)
	}
	return exists, nil
}
