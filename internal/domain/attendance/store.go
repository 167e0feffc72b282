package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// CheckIn opens today's attendance record. The UNIQUE(employee_id, date)
// constraint is the enforcement point for one check-in per day.
func (s *Store) CheckIn(ctx context.Context, employeeID int64, now time.Time) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in, status)
    VALUES ($1, $2, $3, $4)
    RETURNING id, employee_id, date, check_in, check_out, work_hours, status, COALESCE(notes, ''), created_at
  `, employeeID, now, now, StatusPresent).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.WorkHours, &rec.Status, &rec.Notes, &rec.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return Record{}, errs.Wrap(errs.Validation, "attendance already recorded for today", err)
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// CheckOut closes today's open record and derives work_hours, all inside one
// transaction with the row locked against a concurrent double checkout.
func (s *Store) CheckOut(ctx context.Context, employeeID int64, now time.Time) (Record, error) {
	var rec Record
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var id int64
		var checkIn, checkOut *time.Time
		err := tx.QueryRow(ctx, `
      SELECT id, check_in, check_out
      FROM attendance
      WHERE employee_id = $1 AND date = $2
      FOR UPDATE
    `, employeeID, now).Scan(&id, &checkIn, &checkOut)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.New(errs.NotFound, "no check-in found for today")
		}
		if err != nil {
			return err
		}
		if checkOut != nil {
			return errs.New(errs.Validation, "check-out already recorded for today")
		}

		hours := WorkHours(checkIn, &now)
		return tx.QueryRow(ctx, `
      UPDATE attendance
      SET check_out = $1, work_hours = $2, updated_at = now()
      WHERE id = $3
      RETURNING id, employee_id, date, check_in, check_out, work_hours, status, COALESCE(notes, ''), created_at
    `, now, hours, id).Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.WorkHours, &rec.Status, &rec.Notes, &rec.CreatedAt,
		)
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if filter.EmployeeID != 0 {
		args = append(args, filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate, *filter.EndDate)
		clauses = append(clauses, fmt.Sprintf("a.date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	query := `
    SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.work_hours,
           a.status, COALESCE(a.notes, ''),
           e.first_name || ' ' || e.last_name, e.employee_number, a.created_at
    FROM attendance a
    JOIN employees e ON a.employee_id = e.id`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY a.date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.WorkHours, &rec.Status, &rec.Notes, &rec.EmployeeName,
			&rec.EmployeeNumber, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MonthlyStats aggregates one employee's attendance for a month.
func (s *Store) MonthlyStats(ctx context.Context, employeeID int64, month, year int) (Stats, error) {
	var stats Stats
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COUNT(1) FILTER (WHERE status = $1),
           COUNT(1) FILTER (WHERE status = $2),
           COALESCE(SUM(work_hours), 0),
           COALESCE(AVG(work_hours), 0)
    FROM attendance
    WHERE employee_id = $3
      AND EXTRACT(MONTH FROM date) = $4
      AND EXTRACT(YEAR FROM date) = $5
  `, StatusPresent, StatusAbsent, employeeID, month, year).Scan(
		&stats.TotalDays, &stats.PresentDays, &stats.AbsentDays,
		&stats.TotalHours, &stats.AvgHours,
	)
	return stats, err
}
