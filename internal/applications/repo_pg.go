package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jobboard-backend/internal/shared/paging"
	"jobboard-backend/internal/shared/storage/db"
)

const (
	pairConstraint = "applications_applicant_job_key"
	jobConstraint  = "applications_job_id_fkey"
)

// PGRepo implements Repo using Postgres. The unique constraint on
// (applicant_id, job_id) settles concurrent duplicate applications.
type PGRepo struct {
	DB db.DBTX
}

const selectApplication = `
SELECT a.id, a.applicant_id, a.job_id, j.created_by, a.resume_link, a.resume_key, a.resume_pages, a.cover_letter, a.status, a.applied_at
FROM applications a
JOIN jobs j ON j.id = a.job_id`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, applicant_id, job_id, resume_link, resume_key, resume_pages, cover_letter, status, applied_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.ApplicantID,
		app.JobID,
		app.ResumeLink,
		app.ResumeKey,
		app.ResumePages,
		app.CoverLetter,
		string(app.Status),
		app.AppliedAt,
	)
	switch {
	case db.IsUniqueViolation(err, pairConstraint):
		return ErrDuplicate
	case db.IsForeignKeyViolation(err, jobConstraint):
		return ErrJobGone
	}
	return err
}

func (r *PGRepo) Exists(ctx context.Context, applicantID, jobID string) (bool, error) {
	if !isUUID(applicantID) || !isUUID(jobID) {
		return false, nil
	}
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE applicant_id = $1 AND job_id = $2)`,
		applicantID, jobID,
	).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Get(ctx context.Context, applicationID string) (Application, error) {
	if !isUUID(applicationID) {
		return Application{}, ErrNotFound
	}
	app, err := scanApplication(r.DB.QueryRowContext(ctx, selectApplication+"\nWHERE a.id = $1", applicationID))
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, applicationID string, status Status) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, applicationID, string(status))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context, filter Filter, page paging.Request) ([]Application, int, error) {
	if filter.JobID != "" && !isUUID(filter.JobID) {
		return nil, 0, nil
	}
	var (
		out   []Application
		total int
	)
	err := db.Snapshot(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, total, err = listApplications(ctx, tx, filter, page)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func listApplications(ctx context.Context, conn db.DBTX, filter Filter, page paging.Request) ([]Application, int, error) {
	where, args := filter.sql()

	var total int
	countQuery := "SELECT count(*) FROM applications a JOIN jobs j ON j.id = a.job_id" + where
	if err := conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	args = append(args, page.Limit(), page.Offset())
	query := fmt.Sprintf("%s%s\nORDER BY a.applied_at DESC, a.id DESC\nLIMIT $%d OFFSET $%d", selectApplication, where, len(args)-1, len(args))
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DeleteByJob is normally handled by the foreign-key cascade.
func (r *PGRepo) DeleteByJob(ctx context.Context, jobID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	return err
}

func (f Filter) sql() (string, []any) {
	var clauses []string
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.ApplicantID != "" {
		add("a.applicant_id = $%d", f.ApplicantID)
	}
	if f.JobOwnerID != "" {
		add("j.created_by = $%d", f.JobOwnerID)
	}
	if f.JobID != "" {
		add("a.job_id = $%d", f.JobID)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var status string
	err := row.Scan(
		&app.ID,
		&app.ApplicantID,
		&app.JobID,
		&app.JobOwnerID,
		&app.ResumeLink,
		&app.ResumeKey,
		&app.ResumePages,
		&app.CoverLetter,
		&status,
		&app.AppliedAt,
	)
	app.Status = Status(status)
	return app, err
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
