package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrms/internal/db"
	"hrms/internal/domain/errs"
)

const jobTitleColumns = `
    j.id, j.title, COALESCE(j.code, ''), j.department_id, COALESCE(j.level, ''),
    COALESCE(j.description, ''), COALESCE(j.responsibilities, ''),
    COALESCE(j.requirements, ''), j.min_salary, j.max_salary, j.is_active,
    COALESCE(d.name, ''), j.created_at, j.updated_at`

const jobTitleJoins = `
    FROM job_titles j
    LEFT JOIN departments d ON j.department_id = d.id`

func scanJobTitle(row pgx.Row) (JobTitle, error) {
	var j JobTitle
	err := row.Scan(
		&j.ID, &j.Title, &j.Code, &j.DepartmentID, &j.Level, &j.Description,
		&j.Responsibilities, &j.Requirements, &j.MinSalary, &j.MaxSalary,
		&j.IsActive, &j.DepartmentName, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

func (s *Store) ListJobTitles(ctx context.Context) ([]JobTitle, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+jobTitleColumns+jobTitleJoins+" WHERE j.is_active ORDER BY j.title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobTitle
	for rows.Next() {
		j, err := scanJobTitle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) GetJobTitle(ctx context.Context, id int64) (JobTitle, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+jobTitleColumns+jobTitleJoins+" WHERE j.id = $1", id)
	j, err := scanJobTitle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return JobTitle{}, errs.New(errs.NotFound, "job title not found")
	}
	return j, err
}

func (s *Store) CreateJobTitle(ctx context.Context, j JobTitle) (JobTitle, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_titles (title, code, department_id, level, description,
      responsibilities, requirements, min_salary, max_salary, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE)
    RETURNING id, is_active, created_at, updated_at
  `, j.Title, nullString(j.Code), j.DepartmentID, nullString(j.Level),
		nullString(j.Description), nullString(j.Responsibilities),
		nullString(j.Requirements), j.MinSalary, j.MaxSalary).
		Scan(&j.ID, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return JobTitle{}, errs.Wrap(errs.Duplicate, "job title code already in use", err)
	}
	if err != nil {
		return JobTitle{}, err
	}
	return j, nil
}

func (s *Store) UpdateJobTitle(ctx context.Context, j JobTitle) (JobTitle, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE job_titles SET
      title = $1, code = $2, department_id = $3, level = $4, description = $5,
      responsibilities = $6, requirements = $7, min_salary = $8, max_salary = $9,
      updated_at = now()
    WHERE id = $10
  `, j.Title, nullString(j.Code), j.DepartmentID, nullString(j.Level),
		nullString(j.Description), nullString(j.Responsibilities),
		nullString(j.Requirements), j.MinSalary, j.MaxSalary, j.ID)
	if db.IsUniqueViolation(err) {
		return JobTitle{}, errs.Wrap(errs.Duplicate, "job title code already in use", err)
	}
	if err != nil {
		return JobTitle{}, err
	}
	if cmd.RowsAffected() == 0 {
		return JobTitle{}, errs.New(errs.NotFound, "job title not found")
	}
	return s.GetJobTitle(ctx, j.ID)
}

func (s *Store) SoftDeleteJobTitle(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE job_titles SET is_active = FALSE, updated_at = now() WHERE id = $1 AND is_active", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errs.New(errs.NotFound, "job title not found")
	}
	return nil
}
