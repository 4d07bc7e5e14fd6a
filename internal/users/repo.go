package users

import (
	"context"

	"jobboard-backend/internal/shared/identity"
)

// Repo persists accounts. Create returns ErrEmailTaken when the email is
// already registered; lookups return ErrNotFound.
type Repo interface {
	Create(ctx context.Context, acct identity.Account) error
	GetByID(ctx context.Context, userID string) (identity.Account, error)
	GetByEmail(ctx context.Context, email string) (identity.Account, error)
}
