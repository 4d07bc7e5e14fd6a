package users

import (
	"context"
	"sync"

	"jobboard-backend/internal/shared/identity"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	users   map[string]identity.Account
	byEmail map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:   make(map[string]identity.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, acct identity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[acct.Email]; ok {
		return ErrEmailTaken
	}
	r.users[acct.ID] = acct
	r.byEmail[acct.Email] = acct.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (identity.Account, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.users[userID]
	if !ok {
		return identity.Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (identity.Account, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return identity.Account{}, ErrNotFound
	}
	return r.users[id], nil
}
