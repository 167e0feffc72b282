package recruitment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/errs"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const postingColumns = `
    jp.id, jp.title, jp.department_id, jp.job_title_id,
    COALESCE(jp.description, ''), COALESCE(jp.requirements, ''), jp.vacancies,
    COALESCE(jp.salary_range, ''), COALESCE(jp.employment_type, ''),
    COALESCE(jp.location, ''), jp.status, jp.posted_date, jp.closing_date,
    jp.created_by, COALESCE(d.name, ''), COALESCE(jt.title, ''), jp.created_at`

const postingJoins = `
    FROM job_postings jp
    LEFT JOIN departments d ON jp.department_id = d.id
    LEFT JOIN job_titles jt ON jp.job_title_id = jt.id`

func scanPosting(row pgx.Row) (Posting, error) {
	var p Posting
	err := row.Scan(
		&p.ID, &p.Title, &p.DepartmentID, &p.JobTitleID, &p.Description,
		&p.Requirements, &p.Vacancies, &p.SalaryRange, &p.EmploymentType,
		&p.Location, &p.Status, &p.PostedDate, &p.ClosingDate, &p.CreatedBy,
		&p.DepartmentName, &p.JobTitleName, &p.CreatedAt,
	)
	return p, err
}

func (s *Store) ListPostings(ctx context.Context, filter PostingFilter) ([]Posting, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.PublicOnly {
		args = append(args, PostingOpen)
		clauses = append(clauses, fmt.Sprintf("jp.status = $%d", len(args)))
	} else if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("jp.status = $%d", len(args)))
	}
	if filter.DepartmentID != 0 {
		args = append(args, filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("jp.department_id = $%d", len(args)))
	}

	query := "SELECT" + postingColumns + postingJoins
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY jp.posted_date DESC, jp.id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPosting(ctx context.Context, id int64) (Posting, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+postingColumns+postingJoins+" WHERE jp.id = $1", id)
	p, err := scanPosting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Posting{}, errs.New(errs.NotFound, "job posting not found")
	}
	return p, err
}

func (s *Store) CreatePosting(ctx context.Context, p Posting) (Posting, error) {
	if p.Status == "" {
		p.Status = PostingOpen
	}
	if p.Vacancies == 0 {
		p.Vacancies = 1
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_postings (title, department_id, job_title_id, description,
      requirements, vacancies, salary_range, employment_type, location,
      status, closing_date, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id, posted_date, created_at
  `, p.Title, p.DepartmentID, p.JobTitleID, nullString(p.Description),
		nullString(p.Requirements), p.Vacancies, nullString(p.SalaryRange),
		nullString(p.EmploymentType), nullString(p.Location), p.Status,
		p.ClosingDate, p.CreatedBy).
		Scan(&p.ID, &p.PostedDate, &p.CreatedAt)
	return p, err
}

func (s *Store) UpdatePosting(ctx context.Context, p Posting) (Posting, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE job_postings SET
      title = $1, department_id = $2, job_title_id = $3, description = $4,
      requirements = $5, vacancies = $6, salary_range = $7,
      employment_type = $8, location = $9, status = $10, closing_date = $11,
      updated_at = now()
    WHERE id = $12
  `, p.Title, p.DepartmentID, p.JobTitleID, nullString(p.Description),
		nullString(p.Requirements), p.Vacancies, nullString(p.SalaryRange),
		nullString(p.EmploymentType), nullString(p.Location), p.Status,
		p.ClosingDate, p.ID)
	if err != nil {
		return Posting{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Posting{}, errs.New(errs.NotFound, "job posting not found")
	}
	return s.GetPosting(ctx, p.ID)
}

// Apply records a public application. The posting must still be open and,
// if it carries a closing date, that date must not have passed.
func (s *Store) Apply(ctx context.Context, a Application, now time.Time) (Application, error) {
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var status string
		var closing *time.Time
		err := tx.QueryRow(ctx,
			"SELECT status, closing_date FROM job_postings WHERE id = $1 FOR SHARE",
			a.JobPostingID,
		).Scan(&status, &closing)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.New(errs.NotFound, "job posting not found")
		}
		if err != nil {
			return err
		}
		if status != PostingOpen {
			return errs.New(errs.Conflict, "job posting is not open for applications")
		}
		if closing != nil && closing.Before(now.Truncate(24*time.Hour)) {
			return errs.New(errs.Conflict, "job posting has closed")
		}

		return tx.QueryRow(ctx, `
      INSERT INTO job_applications (job_posting_id, applicant_name, email,
        phone, resume_file, cover_letter, experience_years, education)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      RETURNING id, status, applied_date
    `, a.JobPostingID, a.ApplicantName, a.Email, nullString(a.Phone),
			nullString(a.ResumeFile), nullString(a.CoverLetter), a.ExperienceYears,
			nullString(a.Education)).
			Scan(&a.ID, &a.Status, &a.AppliedDate)
	})
	return a, err
}

func (s *Store) ListApplications(ctx context.Context, postingID int64, status string) ([]Application, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if postingID != 0 {
		args = append(args, postingID)
		clauses = append(clauses, fmt.Sprintf("ja.job_posting_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("ja.status = $%d", len(args)))
	}

	query := `
    SELECT ja.id, ja.job_posting_id, ja.applicant_name, ja.email,
           COALESCE(ja.phone, ''), COALESCE(ja.resume_file, ''),
           COALESCE(ja.cover_letter, ''), ja.experience_years,
           COALESCE(ja.education, ''), ja.status, ja.interview_date,
           COALESCE(ja.interview_notes, ''), ja.applied_date, ja.reviewed_by,
           ja.reviewed_date, jp.title
    FROM job_applications ja
    JOIN job_postings jp ON ja.job_posting_id = jp.id`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY ja.applied_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobPostingID, &a.ApplicantName, &a.Email,
			&a.Phone, &a.ResumeFile, &a.CoverLetter, &a.ExperienceYears,
			&a.Education, &a.Status, &a.InterviewDate, &a.InterviewNotes,
			&a.AppliedDate, &a.ReviewedBy, &a.ReviewedDate, &a.PostingTitle); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ReviewApplication updates an application's status and interview details,
// stamping the reviewer. Interview date and notes are partial: an absent
// value keeps what an earlier review recorded.
func (s *Store) ReviewApplication(ctx context.Context, id int64, status string, interviewDate *time.Time, notes string, reviewerUserID int64, now time.Time) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE job_applications SET
      status = $1,
      interview_date = COALESCE($2, interview_date),
      interview_notes = COALESCE($3, interview_notes),
      reviewed_by = $4, reviewed_date = $5, updated_at = now()
    WHERE id = $6
  `, status, interviewDate, nullString(notes), reviewerUserID, now, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errs.New(errs.NotFound, "job application not found")
	}
	return nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
