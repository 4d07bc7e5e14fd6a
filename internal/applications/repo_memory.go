package applications

import (
	"context"
	"sort"
	"sync"

	"jobboard-backend/internal/shared/paging"
)

type pairKey struct {
	applicantID string
	jobID       string
}

type MemoryRepo struct {
	mu    sync.RWMutex
	apps  map[string]Application
	pairs map[pairKey]string
	order []string
	// deletedJobs holds ids passed to DeleteByJob; job ids are never reused.
	deletedJobs map[string]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		apps:        make(map[string]Application),
		pairs:       make(map[pairKey]string),
		deletedJobs: make(map[string]struct{}),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, gone := r.deletedJobs[app.JobID]; gone {
		return ErrJobGone
	}
	key := pairKey{applicantID: app.ApplicantID, jobID: app.JobID}
	if _, ok := r.pairs[key]; ok {
		return ErrDuplicate
	}
	r.apps[app.ID] = app
	r.pairs[key] = app.ID
	r.order = append(r.order, app.ID)
	return nil
}

func (r *MemoryRepo) Exists(ctx context.Context, applicantID, jobID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pairs[pairKey{applicantID: applicantID, jobID: jobID}]
	return ok, nil
}

func (r *MemoryRepo) Get(ctx context.Context, applicationID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, applicationID string, status Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	r.apps[applicationID] = app
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter, page paging.Request) ([]Application, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	matched := make([]Application, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		app := r.apps[r.order[i]]
		if filter.matches(app) {
			matched = append(matched, app)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].AppliedAt.After(matched[j].AppliedAt)
	})
	return paging.Window(page, matched), len(matched), nil
}

func (r *MemoryRepo) DeleteByJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedJobs[jobID] = struct{}{}
	kept := r.order[:0]
	for _, id := range r.order {
		app := r.apps[id]
		if app.JobID == jobID {
			delete(r.apps, id)
			delete(r.pairs, pairKey{applicantID: app.ApplicantID, jobID: app.JobID})
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return nil
}

func (f Filter) matches(app Application) bool {
	if f.ApplicantID != "" && app.ApplicantID != f.ApplicantID {
		return false
	}
	if f.JobOwnerID != "" && app.JobOwnerID != f.JobOwnerID {
		return false
	}
	if f.JobID != "" && app.JobID != f.JobID {
		return false
	}
	return true
}
