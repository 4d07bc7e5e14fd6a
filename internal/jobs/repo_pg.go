package jobs

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

// PGRepo implements Repo using Postgres. Deleting a job cascades to its
// applications through the foreign key.
type PGRepo struct {
	DB db.DBTX
}

const selectJob = `
SELECT j.id, j.title, j.description, j.location, j.created_by, u.name, j.created_at
FROM jobs j
JOIN users u ON u.id = j.created_by`

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, title, description, location, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Location,
		job.OwnerID,
		job.CreatedAt,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, jobID string) (Job, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return Job{}, ErrNotFound
	}
	job, err := scanJob(r.DB.QueryRowContext(ctx, selectJob+"\nWHERE j.id = $1", jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs
SET title = $2, description = $3, location = $4
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, job.ID, job.Title, job.Description, job.Location)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) List(ctx context.Context, filter Filter, page paging.Request) ([]Job, int, error) {
	var (
		out   []Job
		total int
	)
	err := db.Snapshot(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, total, err = listJobs(ctx, tx, filter, page)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func listJobs(ctx context.Context, conn db.DBTX, filter Filter, page paging.Request) ([]Job, int, error) {
	where, args := filter.sql()

	var total int
	countQuery := "SELECT count(*) FROM jobs j JOIN users u ON u.id = j.created_by" + where
	if err := conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	args = append(args, page.Limit(), page.Offset())
	query := fmt.Sprintf("%s%s\nORDER BY j.created_at DESC, j.id DESC\nLIMIT $%d OFFSET $%d", selectJob, where, len(args)-1, len(args))
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (f Filter) sql() (string, []any) {
	var clauses []string
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.OwnerID != "" {
		add("j.created_by = $%d", f.OwnerID)
	}
	if f.TitleContains != "" {
		add("j.title ILIKE $%d", likePattern(f.TitleContains))
	}
	if f.Location != "" {
		add("j.location = $%d", f.Location)
	}
	if f.LocationContains != "" {
		add("j.location ILIKE $%d", likePattern(f.LocationContains))
	}
	if f.OwnerNameContains != "" {
		add("u.name ILIKE $%d", likePattern(f.OwnerNameContains))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.OwnerID,
		&job.OwnerName,
		&job.CreatedAt,
	)
	return job, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
