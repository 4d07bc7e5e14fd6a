package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/extract"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/identity"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/paging"
	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/shared/telemetry"
	"jobboard-backend/internal/shared/util"
	"jobboard-backend/internal/validate"
)

const defaultUploadTimeout = 30 * time.Second

// JobFinder resolves the job an application targets.
type JobFinder interface {
	Find(ctx context.Context, jobID string) (jobs.Job, error)
}

// ApplyInput is one submission. Resume is nil when no file was sent.
type ApplyInput struct {
	JobID       string
	CoverLetter string
	ResumeName  string
	Resume      io.Reader
}

// Service is the application ledger.
type Service struct {
	Repo          Repo
	Jobs          JobFinder
	Store         object.ObjectStore
	UploadTimeout time.Duration
	now           func() time.Time
}

func NewService(repo Repo, jobFinder JobFinder, store object.ObjectStore, uploadTimeout time.Duration) *Service {
	return &Service{Repo: repo, Jobs: jobFinder, Store: store, UploadTimeout: uploadTimeout, now: time.Now}
}

// Apply submits an application. The duplicate check runs before validation
// and before the resume is uploaded.
func (s *Service) Apply(ctx context.Context, acct identity.Account, in ApplyInput) (Application, error) {
	if err := authz.Authorize(acct, authz.ActionApplicationCreate, nil); err != nil {
		return Application{}, err
	}

	if in.JobID != "" {
		exists, err := s.Repo.Exists(ctx, acct.ID, in.JobID)
		if err != nil {
			return Application{}, fmt.Errorf("check duplicate: %w", err)
		}
		if exists {
			return Application{}, s.duplicate(acct, in.JobID)
		}
	}

	fields := validate.Application(validate.ApplicationInput{
		Job:         in.JobID,
		Resume:      in.ResumeName,
		CoverLetter: in.CoverLetter,
	})
	if in.Resume == nil && !hasField(fields, "resume") {
		fields = append(fields, apperr.FieldError{Field: "resume", Message: validate.RequiredMessage})
	}
	if _, err := util.SanitizeFileName(in.ResumeName); err != nil && !hasField(fields, "resume") {
		fields = append(fields, apperr.FieldError{Field: "resume", Message: validate.ResumeMessage})
	}
	var job jobs.Job
	if in.JobID != "" {
		found, err := s.Jobs.Find(ctx, in.JobID)
		switch {
		case err == nil:
			job = found
		case errors.Is(err, apperr.ErrNotFound):
			fields = append(fields, apperr.FieldError{Field: "job", Message: fmt.Sprintf(invalidJobMessageFmt, in.JobID)})
		default:
			return Application{}, fmt.Errorf("find job: %w", err)
		}
	}
	if len(fields) > 0 {
		return Application{}, apperr.Validation(fields...)
	}

	data, err := io.ReadAll(in.Resume)
	if err != nil {
		return Application{}, apperr.Validation(apperr.FieldError{Field: "resume", Message: "Unable to read resume."})
	}

	obj, err := s.upload(ctx, acct, in.ResumeName, data)
	if err != nil {
		return Application{}, err
	}

	app := Application{
		ID:          uuid.NewString(),
		ApplicantID: acct.ID,
		JobID:       job.ID,
		JobOwnerID:  job.OwnerID,
		ResumeLink:  obj.URL,
		ResumeKey:   obj.Key,
		ResumePages: resumePages(ctx, data),
		CoverLetter: in.CoverLetter,
		Status:      StatusApplied,
		AppliedAt:   s.clock().UTC(),
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		s.discard(obj.Key)
		if errors.Is(err, ErrDuplicate) {
			return Application{}, s.duplicate(acct, in.JobID)
		}
		if errors.Is(err, ErrJobGone) {
			return Application{}, apperr.Validation(apperr.FieldError{Field: "job", Message: fmt.Sprintf(invalidJobMessageFmt, in.JobID)})
		}
		return Application{}, fmt.Errorf("create application: %w", err)
	}

	metrics.IncApplicationsSubmitted()
	telemetry.Info("application.submitted", map[string]any{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"user_id":        acct.ID,
		"resume_pages":   app.ResumePages,
	})
	return app, nil
}

func (s *Service) upload(ctx context.Context, acct identity.Account, name string, data []byte) (object.Object, error) {
	timeout := s.UploadTimeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	uctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	obj, err := s.Store.Save(uctx, acct.ID, name, bytes.NewReader(data))
	metrics.ObserveResumeUploadMs(metrics.SinceMillis(start))
	if errors.Is(err, util.ErrInvalidFileName) {
		return object.Object{}, apperr.Validation(apperr.FieldError{Field: "resume", Message: validate.ResumeMessage})
	}
	if err != nil {
		metrics.IncResumeUploadsFailed()
		return object.Object{}, apperr.Unavailable(UploadFailedMessage, err)
	}
	return obj, nil
}

// discard removes an uploaded resume that no application references.
func (s *Service) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("application.resume_cleanup_failed", map[string]any{"resume_key": key, "error": err.Error()})
	}
}

func (s *Service) duplicate(acct identity.Account, jobID string) error {
	metrics.IncApplicationsDuplicate()
	telemetry.Info("application.duplicate", map[string]any{"job_id": jobID, "user_id": acct.ID})
	return apperr.Duplicate(DuplicateMessage, DuplicateDetail)
}

// List returns the applications visible to acct, newest first. Applicants
// see their own; companies see those to jobs they own.
func (s *Service) List(ctx context.Context, acct identity.Account, jobID string, page paging.Request) (paging.Result[Application], error) {
	if err := authz.Authorize(acct, authz.ActionApplicationList, nil); err != nil {
		return paging.Result[Application]{}, err
	}
	filter := Filter{JobID: jobID}
	switch acct.Role {
	case identity.RoleApplicant:
		filter.ApplicantID = acct.ID
	case identity.RoleCompany:
		filter.JobOwnerID = acct.ID
	default:
		return paging.Result[Application]{}, apperr.PermissionDenied()
	}

	items, total, err := s.Repo.List(ctx, filter, page)
	if err != nil {
		return paging.Result[Application]{}, fmt.Errorf("list applications: %w", err)
	}
	return paging.NewResult(page, items, total)
}

// Get returns one application to its applicant or to the job's owner.
func (s *Service) Get(ctx context.Context, acct identity.Account, applicationID string) (Application, error) {
	return s.visible(ctx, acct, authz.ActionApplicationRetrieve, applicationID)
}

// UpdateStatus overwrites the status and returns the application together
// with the status it replaced.
func (s *Service) UpdateStatus(ctx context.Context, acct identity.Account, applicationID, raw string) (Application, Status, error) {
	app, err := s.visible(ctx, acct, authz.ActionApplicationUpdateStatus, applicationID)
	if err != nil {
		return Application{}, "", err
	}
	if fields := validate.Status(raw, statusNames()); len(fields) > 0 {
		return Application{}, "", apperr.Validation(fields...)
	}

	previous := app.Status
	next := Status(raw)
	if err := s.Repo.UpdateStatus(ctx, app.ID, next); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Application{}, "", apperr.NotFound(NotFoundMessage)
		}
		return Application{}, "", fmt.Errorf("update status: %w", err)
	}
	app.Status = next
	telemetry.Info("application.status_changed", map[string]any{
		"application_id": app.ID,
		"user_id":        acct.ID,
		"from":           string(previous),
		"to":             string(next),
	})
	return app, previous, nil
}

// visible gates on role, then existence, then ownership.
func (s *Service) visible(ctx context.Context, acct identity.Account, action authz.Action, applicationID string) (Application, error) {
	if err := authz.Authorize(acct, action, nil); err != nil {
		return Application{}, err
	}
	app, err := s.Repo.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Application{}, apperr.NotFound(NotFoundMessage)
		}
		return Application{}, fmt.Errorf("get application: %w", err)
	}
	target := &authz.Target{OwnerID: app.JobOwnerID, ApplicantID: app.ApplicantID}
	if err := authz.Authorize(acct, action, target); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// resumePages is best effort; a resume that cannot be parsed is still accepted.
func resumePages(ctx context.Context, data []byte) int {
	info, err := extract.Inspect(ctx, data)
	if err != nil {
		telemetry.Warn("application.resume_inspect_failed", map[string]any{"error": err.Error(), "mime_type": info.MimeType})
		return 0
	}
	return info.Pages
}

func hasField(fields []apperr.FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
