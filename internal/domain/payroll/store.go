package payroll

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

const recordColumns = `
    p.id, p.employee_id, p.month, p.year, p.basic_salary, p.allowances,
    p.bonuses, p.deductions, p.overtime_hours, p.overtime_amount,
    p.net_salary, p.payment_date, COALESCE(p.payment_method, ''), p.status,
    COALESCE(p.notes, ''), e.first_name || ' ' || e.last_name,
    e.employee_number, COALESCE(d.name, ''), p.created_at`

const recordJoins = `
    FROM payroll p
    JOIN employees e ON p.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Month, &r.Year, &r.BasicSalary, &r.Allowances,
		&r.Bonuses, &r.Deductions, &r.OvertimeHours, &r.OvertimeAmount,
		&r.NetSalary, &r.PaymentDate, &r.PaymentMethod, &r.Status, &r.Notes,
		&r.EmployeeName, &r.EmployeeNumber, &r.DepartmentName, &r.CreatedAt,
	)
	return r, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.EmployeeID != 0 {
		args = append(args, filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		clauses = append(clauses, fmt.Sprintf("p.month = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		clauses = append(clauses, fmt.Sprintf("p.year = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("p.status = $%d", len(args)))
	}

	query := "SELECT" + recordColumns + recordJoins
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.year DESC, p.month DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+recordColumns+recordJoins+" WHERE p.id = $1", id)
	r, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, errs.New(errs.NotFound, "payroll record not found")
	}
	return r, err
}

func (s *Store) Create(ctx context.Context, r Record) (Record, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll (employee_id, month, year, basic_salary, allowances,
      bonuses, deductions, overtime_hours, overtime_amount, net_salary,
      payment_method, status, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id, created_at
  `, r.EmployeeID, r.Month, r.Year, r.BasicSalary, r.Allowances, r.Bonuses,
		r.Deductions, r.OvertimeHours, r.OvertimeAmount, r.NetSalary,
		nullString(r.PaymentMethod), StatusPending, nullString(r.Notes)).
		Scan(&r.ID, &r.CreatedAt)
	if db.IsUniqueViolation(err) {
		return Record{}, errs.Wrap(errs.Duplicate, "payroll record already exists for this employee and month", err)
	}
	if err != nil {
		return Record{}, err
	}
	r.Status = StatusPending
	return r, nil
}

func (s *Store) Update(ctx context.Context, r Record) (Record, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE payroll SET
      basic_salary = $1, allowances = $2, bonuses = $3, deductions = $4,
      overtime_hours = $5, overtime_amount = $6, net_salary = $7,
      payment_method = $8, status = $9, notes = $10, updated_at = now()
    WHERE id = $11
  `, r.BasicSalary, r.Allowances, r.Bonuses, r.Deductions, r.OvertimeHours,
		r.OvertimeAmount, r.NetSalary, nullString(r.PaymentMethod), r.Status,
		nullString(r.Notes), r.ID)
	if err != nil {
		return Record{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Record{}, errs.New(errs.NotFound, "payroll record not found")
	}
	return s.Get(ctx, r.ID)
}

// MarkPaid flips a record to paid with the given payment date.
func (s *Store) MarkPaid(ctx context.Context, id int64, paymentDate time.Time) (Record, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE payroll SET status = $1, payment_date = $2, updated_at = now()
    WHERE id = $3
  `, StatusPaid, paymentDate, id)
	if err != nil {
		return Record{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Record{}, errs.New(errs.NotFound, "payroll record not found")
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM payroll WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errs.New(errs.NotFound, "payroll record not found")
	}
	return nil
}

// GenerateMonthly creates one pending record per active salaried employee.
// The existence check and the inserts share a transaction so two concurrent
// generations cannot both pass the check.
func (s *Store) GenerateMonthly(ctx context.Context, month, year int) (int, error) {
	var generated int
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var existing int
		if err := tx.QueryRow(ctx,
			"SELECT COUNT(1) FROM payroll WHERE month = $1 AND year = $2", month, year,
		).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return errs.New(errs.Conflict, "payroll already generated for this month")
		}

		cmd, err := tx.Exec(ctx, `
      INSERT INTO payroll (employee_id, month, year, basic_salary, net_salary, status)
      SELECT id, $1, $2, salary, salary, $3
      FROM employees
      WHERE status = 'active' AND salary > 0
    `, month, year, StatusPending)
		if err != nil {
			return err
		}
		generated = int(cmd.RowsAffected())
		if generated == 0 {
			return errs.New(errs.NotFound, "no active salaried employees")
		}
		return nil
	})
	return generated, err
}

func (s *Store) MonthlyStats(ctx context.Context, month, year int) (Stats, error) {
	var stats Stats
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COALESCE(SUM(net_salary), 0),
           COALESCE(SUM(net_salary) FILTER (WHERE status = $1), 0),
           COALESCE(SUM(net_salary) FILTER (WHERE status = $2), 0)
    FROM payroll
    WHERE month = $3 AND year = $4
  `, StatusPaid, StatusPending, month, year).Scan(
		&stats.Totals.TotalRecords, &stats.Totals.TotalPayroll,
		&stats.Totals.PaidAmount, &stats.Totals.PendingAmount,
	)
	if err != nil {
		return Stats{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(d.name, ''), COUNT(p.id), COALESCE(SUM(p.net_salary), 0)
    FROM payroll p
    JOIN employees e ON p.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE p.month = $1 AND p.year = $2
    GROUP BY d.id, d.name
    ORDER BY SUM(p.net_salary) DESC
  `, month, year)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var t DepartmentTotal
		if err := rows.Scan(&t.Department, &t.EmployeeCount, &t.TotalSalary); err != nil {
			return Stats{}, err
		}
		stats.ByDepartment = append(stats.ByDepartment, t)
	}
	return stats, rows.Err()
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
