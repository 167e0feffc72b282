package training

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/db"
	"hrms/internal/domain/errs"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const programColumns = `
    id, name, COALESCE(description, ''), COALESCE(trainer, ''),
    COALESCE(location, ''), start_date, end_date, duration_hours, capacity,
    enrolled_count, cost, status, created_at`

func scanProgram(row pgx.Row) (Program, error) {
	var p Program
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Trainer, &p.Location, &p.StartDate,
		&p.EndDate, &p.DurationHours, &p.Capacity, &p.EnrolledCount, &p.Cost,
		&p.Status, &p.CreatedAt,
	)
	return p, err
}

func (s *Store) ListPrograms(ctx context.Context, status string) ([]Program, error) {
	query := "SELECT" + programColumns + " FROM training_programs"
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY start_date DESC NULLS LAST, id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProgram(ctx context.Context, id int64) (Program, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+programColumns+" FROM training_programs WHERE id = $1", id)
	p, err := scanProgram(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Program{}, errs.New(errs.NotFound, "training program not found")
	}
	return p, err
}

func (s *Store) CreateProgram(ctx context.Context, p Program) (Program, error) {
	if p.Status == "" {
		p.Status = StatusScheduled
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO training_programs (name, description, trainer, location,
      start_date, end_date, duration_hours, capacity, cost, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, enrolled_count, created_at
  `, p.Name, nullString(p.Description), nullString(p.Trainer),
		nullString(p.Location), p.StartDate, p.EndDate, p.DurationHours,
		p.Capacity, p.Cost, p.Status).
		Scan(&p.ID, &p.EnrolledCount, &p.CreatedAt)
	return p, err
}

// UpdateProgram writes everything except enrolled_count, which is derived
// from the enrollment rows.
func (s *Store) UpdateProgram(ctx context.Context, p Program) (Program, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE training_programs SET
      name = $1, description = $2, trainer = $3, location = $4,
      start_date = $5, end_date = $6, duration_hours = $7, capacity = $8,
      cost = $9, status = $10, updated_at = now()
    WHERE id = $11
  `, p.Name, nullString(p.Description), nullString(p.Trainer),
		nullString(p.Location), p.StartDate, p.EndDate, p.DurationHours,
		p.Capacity, p.Cost, p.Status, p.ID)
	if err != nil {
		return Program{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Program{}, errs.New(errs.NotFound, "training program not found")
	}
	return s.GetProgram(ctx, p.ID)
}

func (s *Store) DeleteProgram(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var enrolled int
		if err := tx.QueryRow(ctx,
			"SELECT COUNT(1) FROM training_enrollments WHERE training_program_id = $1", id,
		).Scan(&enrolled); err != nil {
			return err
		}
		if enrolled > 0 {
			return errs.New(errs.Conflict, "cannot delete a program with enrollments")
		}
		cmd, err := tx.Exec(ctx, "DELETE FROM training_programs WHERE id = $1", id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return errs.New(errs.NotFound, "training program not found")
		}
		return nil
	})
}

// Enroll adds an employee to a program. The capacity check, the insert and
// the counter recount share one transaction. Duplicate enrollment is caught
// by the unique constraint rather than a prior read.
func (s *Store) Enroll(ctx context.Context, programID, employeeID int64) (Enrollment, error) {
	var e Enrollment
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var capacity *int
		var enrolled int
		var status string
		err := tx.QueryRow(ctx, `
      SELECT capacity, enrolled_count, status
      FROM training_programs WHERE id = $1 FOR UPDATE
    `, programID).Scan(&capacity, &enrolled, &status)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.New(errs.NotFound, "training program not found")
		}
		if err != nil {
			return err
		}
		if status == StatusCompleted || status == StatusCancelled {
			return errs.New(errs.Conflict, "program is not open for enrollment")
		}
		if capacity != nil && enrolled >= *capacity {
			return errs.New(errs.Conflict, "training program is full")
		}

		err = tx.QueryRow(ctx, `
      INSERT INTO training_enrollments (training_program_id, employee_id)
      VALUES ($1, $2)
      RETURNING id, enrollment_date, completion_status, certificate_issued
    `, programID, employeeID).
			Scan(&e.ID, &e.EnrollmentDate, &e.CompletionStatus, &e.CertificateIssued)
		if db.IsUniqueViolation(err) {
			return errs.Wrap(errs.Duplicate, "employee already enrolled in this program", err)
		}
		if err != nil {
			return err
		}
		e.TrainingProgramID = programID
		e.EmployeeID = employeeID

		return recountEnrollment(ctx, tx, programID)
	})
	return e, err
}

func (s *Store) ListEnrollments(ctx context.Context, programID int64) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT te.id, te.training_program_id, te.employee_id, te.enrollment_date,
           te.completion_status, te.completion_date, te.score,
           COALESCE(te.feedback, ''), te.certificate_issued,
           e.first_name || ' ' || e.last_name, tp.name
    FROM training_enrollments te
    JOIN employees e ON te.employee_id = e.id
    JOIN training_programs tp ON te.training_program_id = tp.id
    WHERE te.training_program_id = $1
    ORDER BY te.enrollment_date
  `, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.TrainingProgramID, &e.EmployeeID,
			&e.EnrollmentDate, &e.CompletionStatus, &e.CompletionDate, &e.Score,
			&e.Feedback, &e.CertificateIssued, &e.EmployeeName, &e.ProgramName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateEnrollment records progress on an enrollment. A move to completed
// stamps the completion date; withdrawing frees the seat, so the
// program counter is recounted either way.
func (s *Store) UpdateEnrollment(ctx context.Context, id int64, completionStatus string, score *float64, feedback string, certificateIssued bool, now time.Time) (Enrollment, error) {
	var e Enrollment
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var completionDate any
		if completionStatus == CompletionCompleted {
			completionDate = now
		}
		err := tx.QueryRow(ctx, `
      UPDATE training_enrollments SET
        completion_status = $1,
        completion_date = COALESCE($2, completion_date),
        score = $3, feedback = $4, certificate_issued = $5, updated_at = now()
      WHERE id = $6
      RETURNING id, training_program_id, employee_id, enrollment_date,
                completion_status, completion_date, score, COALESCE(feedback, ''),
                certificate_issued
    `, completionStatus, completionDate, score, nullString(feedback),
			certificateIssued, id).
			Scan(&e.ID, &e.TrainingProgramID, &e.EmployeeID, &e.EnrollmentDate,
				&e.CompletionStatus, &e.CompletionDate, &e.Score, &e.Feedback,
				&e.CertificateIssued)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.New(errs.NotFound, "enrollment not found")
		}
		if err != nil {
			return err
		}
		return recountEnrollment(ctx, tx, e.TrainingProgramID)
	})
	return e, err
}

func (s *Store) OverviewStats(ctx context.Context) (Stats, error) {
	var stats Stats

	rows, err := s.DB.Query(ctx,
		"SELECT status, COUNT(1) FROM training_programs GROUP BY status ORDER BY status")
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return Stats{}, err
		}
		stats.StatusCounts = append(stats.StatusCounts, c)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM training_enrollments").Scan(&stats.TotalEnrollments); err != nil {
		return Stats{}, err
	}

	crows, err := s.DB.Query(ctx,
		"SELECT completion_status, COUNT(1) FROM training_enrollments GROUP BY completion_status ORDER BY completion_status")
	if err != nil {
		return Stats{}, err
	}
	defer crows.Close()
	for crows.Next() {
		var c StatusCount
		if err := crows.Scan(&c.Status, &c.Count); err != nil {
			return Stats{}, err
		}
		stats.CompletionStats = append(stats.CompletionStats, c)
	}
	return stats, crows.Err()
}

// recountEnrollment rewrites enrolled_count from the live enrollment rows.
// Withdrawn enrollments do not hold a seat.
func recountEnrollment(ctx context.Context, q db.Querier, programID int64) error {
	_, err := q.Exec(ctx, `
    UPDATE training_programs SET enrolled_count = (
      SELECT COUNT(1) FROM training_enrollments
      WHERE training_program_id = $1 AND completion_status <> $2
    )
    WHERE id = $1
  `, programID, CompletionWithdrew)
	return err
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
