package applications

import (
	"context"

	"jobboard-backend/internal/shared/paging"
)

// Repo persists applications. Create must reject a second application for
// the same (applicant, job) pair with ErrDuplicate atomically.
type Repo interface {
	Create(ctx context.Context, app Application) error
	Exists(ctx context.Context, applicantID, jobID string) (bool, error)
	Get(ctx context.Context, applicationID string) (Application, error)
	UpdateStatus(ctx context.Context, applicationID string, status Status) error
	List(ctx context.Context, filter Filter, page paging.Request) ([]Application, int, error)
	DeleteByJob(ctx context.Context, jobID string) error
}
