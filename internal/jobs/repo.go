package jobs

import (
	"context"

	"jobboard-backend/internal/shared/paging"
)

// Repo persists job postings. Lookups of unknown or malformed ids return
// ErrNotFound. List orders newest first and returns the total match count.
type Repo interface {
	Create(ctx context.Context, job Job) error
	Get(ctx context.Context, jobID string) (Job, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, jobID string) error
	List(ctx context.Context, filter Filter, page paging.Request) ([]Job, int, error)
}

// DependentsRemover deletes records that hang off a job. Stores without
// foreign-key cascades need it.
type DependentsRemover interface {
	DeleteByJob(ctx context.Context, jobID string) error
}
