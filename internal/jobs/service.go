package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/identity"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/paging"
	"jobboard-backend/internal/shared/telemetry"
	"jobboard-backend/internal/validate"
)

// Service is the job catalog.
type Service struct {
	Repo Repo
	// Dependents is set when the store does not cascade deletes itself.
	Dependents DependentsRemover
	now        func() time.Time
}

func NewService(repo Repo, dependents DependentsRemover) *Service {
	return &Service{Repo: repo, Dependents: dependents, now: time.Now}
}

// Create posts a new job owned by acct.
func (s *Service) Create(ctx context.Context, acct identity.Account, in validate.JobInput) (Job, error) {
	if err := authz.Authorize(acct, authz.ActionJobCreate, nil); err != nil {
		return Job{}, err
	}
	if fields := validate.Job(in); len(fields) > 0 {
		return Job{}, apperr.Validation(fields...)
	}

	job := Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		OwnerID:     acct.ID,
		OwnerName:   acct.Name,
		CreatedAt:   s.clock().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	metrics.IncJobsCreated()
	telemetry.Info("job.created", map[string]any{"job_id": job.ID, "user_id": acct.ID})
	return job, nil
}

// Update applies a partial update. Only supplied fields are re-validated.
func (s *Service) Update(ctx context.Context, acct identity.Account, jobID string, patch Patch) (Job, error) {
	job, err := s.owned(ctx, acct, authz.ActionJobUpdate, jobID)
	if err != nil {
		return Job{}, err
	}

	updated, changed := patch.apply(job)
	if len(changed) > 0 {
		in := validate.JobInput{Title: updated.Title, Description: updated.Description, Location: updated.Location}
		if fields := validate.Job(in, changed...); len(fields) > 0 {
			return Job{}, apperr.Validation(fields...)
		}
		if err := s.Repo.Update(ctx, updated); err != nil {
			return Job{}, s.mapErr("update job", err)
		}
	}
	return updated, nil
}

// Delete removes a job and every application to it.
func (s *Service) Delete(ctx context.Context, acct identity.Account, jobID string) error {
	if _, err := s.owned(ctx, acct, authz.ActionJobDelete, jobID); err != nil {
		return err
	}
	if s.Dependents != nil {
		if err := s.Dependents.DeleteByJob(ctx, jobID); err != nil {
			return fmt.Errorf("delete job applications: %w", err)
		}
	}
	if err := s.Repo.Delete(ctx, jobID); err != nil {
		return s.mapErr("delete job", err)
	}
	telemetry.Info("job.deleted", map[string]any{"job_id": jobID, "user_id": acct.ID})
	return nil
}

// Get returns one job to any authenticated account.
func (s *Service) Get(ctx context.Context, acct identity.Account, jobID string) (Job, error) {
	if err := authz.Authorize(acct, authz.ActionJobRetrieve, nil); err != nil {
		return Job{}, err
	}
	return s.Find(ctx, jobID)
}

// Find looks a job up without an authorization check.
func (s *Service) Find(ctx context.Context, jobID string) (Job, error) {
	job, err := s.Repo.Get(ctx, jobID)
	if err != nil {
		return Job{}, s.mapErr("get job", err)
	}
	return job, nil
}

// List browses jobs newest first. Applicants only.
func (s *Service) List(ctx context.Context, acct identity.Account, filter Filter, page paging.Request) (paging.Result[Job], error) {
	if err := authz.Authorize(acct, authz.ActionJobList, nil); err != nil {
		return paging.Result[Job]{}, err
	}
	filter.OwnerID = ""
	return s.list(ctx, filter, page)
}

// ListOwn lists the calling company's own postings newest first.
func (s *Service) ListOwn(ctx context.Context, acct identity.Account, page paging.Request) (paging.Result[Job], error) {
	if err := authz.Authorize(acct, authz.ActionJobListOwn, nil); err != nil {
		return paging.Result[Job]{}, err
	}
	return s.list(ctx, Filter{OwnerID: acct.ID}, page)
}

func (s *Service) list(ctx context.Context, filter Filter, page paging.Request) (paging.Result[Job], error) {
	items, total, err := s.Repo.List(ctx, filter, page)
	if err != nil {
		return paging.Result[Job]{}, fmt.Errorf("list jobs: %w", err)
	}
	return paging.NewResult(page, items, total)
}

// owned checks the role before the lookup so a denied role never learns
// whether the job exists, then checks ownership.
func (s *Service) owned(ctx context.Context, acct identity.Account, action authz.Action, jobID string) (Job, error) {
	if err := authz.Authorize(acct, action, nil); err != nil {
		return Job{}, err
	}
	job, err := s.Find(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if err := authz.Authorize(acct, action, &authz.Target{OwnerID: job.OwnerID}); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (s *Service) mapErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(NotFoundMessage)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
