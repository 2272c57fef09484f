package user

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

// Repository defines methods for accessing user data from storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByLogin(ctx context.Context, emailOrUsername string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	UpdateProfile(ctx context.Context, u *User) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	CountByRole(ctx context.Context) (map[Role]int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const userColumns = `
	u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name,
	u.phone, u.profile_picture, u.role, u.status, u.skill_level,
	u.preferred_sports, u.created_at, u.last_login_at
`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.ProfilePicture, &u.Role, &u.Status, &u.SkillLevel,
		&u.PreferredSports, &u.CreatedAt, &u.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users
			(email, username, password_hash, first_name, last_name, phone,
			 profile_picture, role, status, skill_level, preferred_sports)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.ProfilePicture, u.Role, u.Status, u.SkillLevel, u.PreferredSports,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM public.users u WHERE u.id = $1"
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByLogin(ctx context.Context, emailOrUsername string) (*User, error) {
	query := "SELECT " + userColumns + " FROM public.users u WHERE u.email = $1 OR u.username = $1"
	return scanUser(r.pool.QueryRow(ctx, query, emailOrUsername))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"u.id", "u.email", "u.username", "u.password_hash", "u.first_name", "u.last_name",
		"u.phone", "u.profile_picture", "u.role", "u.status", "u.skill_level",
		"u.preferred_sports", "u.created_at", "u.last_login_at",
		"count(*) OVER() AS total_count",
	).From("public.users u")

	if filter.Role != "" {
		query = query.Where(squirrel.Eq{"u.role": filter.Role})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"u.status": filter.Status})
	}
	if filter.Sport != "" {
		query = query.Where("? = ANY(u.preferred_sports)", filter.Sport)
	}
	if filter.SkillLevel != "" {
		query = query.Where(squirrel.Eq{"u.skill_level": filter.SkillLevel})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"u.first_name": like},
			squirrel.ILike{"u.last_name": like},
			squirrel.ILike{"u.email": like},
			squirrel.ILike{"u.username": like},
		})
	}

	query = query.OrderBy("u.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int

	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Phone, &u.ProfilePicture, &u.Role, &u.Status, &u.SkillLevel,
			&u.PreferredSports, &u.CreatedAt, &u.LastLoginAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}

	return users, total, nil
}

func (r *pgxRepository) UpdateProfile(ctx context.Context, u *User) error {
	const query = `
		UPDATE public.users
		SET first_name = $1, last_name = $2, phone = $3, profile_picture = $4,
		    skill_level = $5, preferred_sports = $6
		WHERE id = $7
	`

	ct, err := r.pool.Exec(ctx, query,
		u.FirstName, u.LastName, u.Phone, u.ProfilePicture,
		u.SkillLevel, u.PreferredSports, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user profile failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE public.users SET status = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update user status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `UPDATE public.users SET last_login_at = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountByRole(ctx context.Context) (map[Role]int, error) {
	const query = `SELECT role, count(*) FROM public.users GROUP BY role`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count users by role failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Role]int)
	for rows.Next() {
		var role Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan role count failed: %w", err)
		}
		counts[role] = n
	}
	return counts, nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	const query = `SELECT status, count(*) FROM public.users GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count users by status failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count failed: %w", err)
		}
		counts[status] = n
	}
	return counts, nil
}
