package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jobboard-backend/internal/shared/identity"
	"jobboard-backend/internal/shared/storage/db"
)

const emailConstraint = "users_email_key"

type PGRepo struct {
	DB db.DBTX
}

func (r *PGRepo) Create(ctx context.Context, acct identity.Account) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, role, is_active, is_staff, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		acct.ID,
		acct.Name,
		acct.Email,
		acct.PasswordHash,
		acct.Role.String(),
		acct.IsActive,
		acct.IsStaff,
		acct.CreatedAt,
	)
	if db.IsUniqueViolation(err, emailConstraint) {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (identity.Account, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return identity.Account{}, ErrNotFound
	}
	const query = `
SELECT id, name, email, password_hash, role, is_active, is_staff, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return scanAccount(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (identity.Account, error) {
	const query = `
SELECT id, name, email, password_hash, role, is_active, is_staff, created_at
FROM users
WHERE email = $1
LIMIT 1`
	return scanAccount(r.DB.QueryRowContext(ctx, query, email))
}

func scanAccount(row *sql.Row) (identity.Account, error) {
	var acct identity.Account
	var role string
	err := row.Scan(
		&acct.ID,
		&acct.Name,
		&acct.Email,
		&acct.PasswordHash,
		&role,
		&acct.IsActive,
		&acct.IsStaff,
		&acct.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return identity.Account{}, ErrNotFound
		}
		return identity.Account{}, err
	}
	parsed, err := identity.ParseRole(role)
	if err != nil {
		return identity.Account{}, fmt.Errorf("user %s: %w", acct.ID, err)
	}
	acct.Role = parsed
	return acct, nil
}
