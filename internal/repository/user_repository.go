package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-console/internal/domain"
)

// UserRepository defines persistence access for administrable accounts and
// their role memberships.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmailOrUserName(ctx context.Context, key string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetLockout(ctx context.Context, id string, until *time.Time) error

	RolesForUser(ctx context.Context, userID string) ([]string, error)
	AddToRole(ctx context.Context, userID, roleID string) error
	RemoveFromRole(ctx context.Context, userID, roleID string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (user_name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.UserName,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET user_name=$1, email=$2, password_hash=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		user.UserName,
		user.Email,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, user_name, email, password_hash, lockout_until, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByEmailOrUserName resolves the login key against both identifying
// columns, case-insensitively, matching how the identity store is queried
// at login.
func (r *userRepository) GetByEmailOrUserName(ctx context.Context, key string) (*domain.User, error) {
	const query = `
        SELECT id, user_name, email, password_hash, lockout_until, created_at, updated_at
        FROM users
        WHERE LOWER(email)=LOWER($1) OR LOWER(user_name)=LOWER($1)`

	return r.scanOne(r.pool.QueryRow(ctx, query, key))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id, user_name, email, password_hash, lockout_until, created_at, updated_at
        FROM users ORDER BY user_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.UserName,
			&user.Email,
			&user.PasswordHash,
			&user.LockoutUntil,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) SetLockout(ctx context.Context, id string, until *time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE users SET lockout_until=$1, updated_at=NOW() WHERE id=$2`, until, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	const query = `
        SELECT r.name
        FROM user_roles ur
        JOIN roles r ON r.id = ur.role_id
        WHERE ur.user_id=$1
        ORDER BY r.name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *userRepository) AddToRole(ctx context.Context, userID, roleID string) error {
	const query = `
        INSERT INTO user_roles (user_id, role_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, roleID)
	return err
}

func (r *userRepository) RemoveFromRole(ctx context.Context, userID, roleID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id=$1 AND role_id=$2`, userID, roleID)
	return err
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.Email,
		&user.PasswordHash,
		&user.LockoutUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
