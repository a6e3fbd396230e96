package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-console/internal/domain"
)

// RoleRepository defines persistence access for roles and their claims.
// Role name lookups are case-insensitive; claim values compare
// case-insensitively within a role.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	Rename(ctx context.Context, id, newName string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.RoleSummary, error)
	UsersInRole(ctx context.Context, roleID string) (int, error)

	ListClaims(ctx context.Context, roleID string, kind domain.ClaimKind) ([]domain.Claim, error)
	AddClaim(ctx context.Context, roleID string, claim domain.Claim) error
	RemoveClaim(ctx context.Context, roleID string, claim domain.Claim) error
	AllClaimValues(ctx context.Context, kind domain.ClaimKind) ([]string, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `
        INSERT INTO roles (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, role.Name).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func (r *roleRepository) Rename(ctx context.Context, id, newName string) error {
	const query = `
        UPDATE roles SET name=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, newName, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM roles WHERE id=$1`

	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM roles WHERE LOWER(name)=LOWER($1)`

	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.RoleSummary, error) {
	const query = `
        SELECT r.id, r.name, COUNT(ur.user_id)
        FROM roles r
        LEFT JOIN user_roles ur ON ur.role_id = r.id
        GROUP BY r.id, r.name
        ORDER BY r.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.RoleSummary
	for rows.Next() {
		var s domain.RoleSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.UsersCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *roleRepository) UsersInRole(ctx context.Context, roleID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_roles WHERE role_id=$1`, roleID).Scan(&count)
	return count, err
}

func (r *roleRepository) ListClaims(ctx context.Context, roleID string, kind domain.ClaimKind) ([]domain.Claim, error) {
	const query = `
        SELECT claim_type, claim_value
        FROM role_claims
        WHERE role_id=$1 AND claim_type=$2
        ORDER BY claim_value`

	rows, err := r.pool.Query(ctx, query, roleID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var kindStr, value string
		if err := rows.Scan(&kindStr, &value); err != nil {
			return nil, err
		}
		claims = append(claims, domain.Claim{Kind: domain.ClaimKind(kindStr), Value: value})
	}
	return claims, rows.Err()
}

func (r *roleRepository) AddClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	const query = `
        INSERT INTO role_claims (role_id, claim_type, claim_value)
        VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, roleID, string(claim.Kind), claim.Value)
	return err
}

func (r *roleRepository) RemoveClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	const query = `
        DELETE FROM role_claims
        WHERE role_id=$1 AND claim_type=$2 AND LOWER(claim_value)=LOWER($3)`

	_, err := r.pool.Exec(ctx, query, roleID, string(claim.Kind), claim.Value)
	return err
}

func (r *roleRepository) AllClaimValues(ctx context.Context, kind domain.ClaimKind) ([]string, error) {
	const query = `
        SELECT claim_value FROM role_claims
        WHERE claim_type=$1
        ORDER BY claim_value`

	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
