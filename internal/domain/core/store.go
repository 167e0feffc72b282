package core

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

const employeeColumns = `
    e.id, e.employee_number, e.first_name, e.last_name, e.email,
    COALESCE(e.phone, ''), e.date_of_birth, COALESCE(e.gender, ''),
    COALESCE(e.national_id, ''), COALESCE(e.marital_status, ''),
    COALESCE(e.address, ''), COALESCE(e.city, ''), COALESCE(e.country, ''),
    e.department_id, e.job_title_id, e.manager_id, e.hire_date,
    COALESCE(e.employment_type, ''), COALESCE(e.work_location, ''),
    e.salary, e.status,
    COALESCE(d.name, ''), COALESCE(j.title, ''),
    COALESCE(m.first_name || ' ' || m.last_name, ''),
    e.created_at, e.updated_at`

const employeeJoins = `
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN job_titles j ON e.job_title_id = j.id
    LEFT JOIN employees m ON e.manager_id = m.id`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.EmployeeNumber, &e.FirstName, &e.LastName, &e.Email,
		&e.Phone, &e.DateOfBirth, &e.Gender, &e.NationalID, &e.MaritalStatus,
		&e.Address, &e.City, &e.Country,
		&e.DepartmentID, &e.JobTitleID, &e.ManagerID, &e.HireDate,
		&e.EmploymentType, &e.WorkLocation, &e.Salary, &e.Status,
		&e.DepartmentName, &e.JobTitleName, &e.ManagerName,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ListEmployees returns one page of employees plus the unpaginated total.
func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter, limit, offset int) ([]Employee, int64, error) {
	where, args := buildEmployeeWhere(filter)

	var total int64
	countQuery := "SELECT COUNT(1) FROM employees e" + where
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + employeeColumns + employeeJoins + where +
		fmt.Sprintf(" ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func buildEmployeeWhere(filter EmployeeFilter) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("e.department_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.employee_number ILIKE $%d)",
			n, n, n, n))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+employeeColumns+employeeJoins+" WHERE e.id = $1", id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, errs.New(errs.NotFound, "employee not found")
	}
	return e, err
}

// CreateEmployee inserts the employee and recounts the department inside one
// transaction. The employee number is server-generated; a collision on its
// unique constraint regenerates and retries instead of failing the request.
func (s *Store) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	var created Employee
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			e.EmployeeNumber = GenerateEmployeeNumber(time.Now())
			created, err = insertEmployee(ctx, tx, e)
			if db.UniqueConstraint(err) == "employees_employee_number_key" {
				continue
			}
			break
		}
		if err != nil {
			return translateEmployeeUnique(err)
		}
		if e.DepartmentID != nil {
			return recountDepartment(ctx, tx, *e.DepartmentID)
		}
		return nil
	})
	if err != nil {
		return Employee{}, err
	}
	return s.GetEmployee(ctx, created.ID)
}

func insertEmployee(ctx context.Context, q db.Querier, e Employee) (Employee, error) {
	err := q.QueryRow(ctx, `
    INSERT INTO employees (
      employee_number, first_name, last_name, email, phone, date_of_birth,
      gender, national_id, marital_status, address, city, country,
      department_id, job_title_id, manager_id, hire_date, employment_type,
      work_location, salary, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
    RETURNING id, created_at, updated_at
  `,
		e.EmployeeNumber, e.FirstName, e.LastName, e.Email, nullString(e.Phone),
		e.DateOfBirth, nullString(e.Gender), nullString(e.NationalID),
		nullString(e.MaritalStatus), nullString(e.Address), nullString(e.City),
		nullString(e.Country), e.DepartmentID, e.JobTitleID, e.ManagerID,
		e.HireDate, nullString(e.EmploymentType), nullString(e.WorkLocation),
		e.Salary, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func translateEmployeeUnique(err error) error {
	switch db.UniqueConstraint(err) {
	case "employees_email_key":
		return errs.Wrap(errs.Duplicate, "email already in use", err)
	case "employees_national_id_key":
		return errs.Wrap(errs.Duplicate, "national id already in use", err)
	case "employees_employee_number_key":
		return errs.Wrap(errs.Duplicate, "employee number already in use", err)
	}
	return err
}

// UpdateEmployee writes the full employee row and recounts both the old and
// new department when membership or status changed, all in one transaction.
func (s *Store) UpdateEmployee(ctx context.Context, e Employee, oldDepartmentID *int64) (Employee, error) {
	err := pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
      UPDATE employees SET
        first_name = $1, last_name = $2, email = $3, phone = $4,
        date_of_birth = $5, gender = $6, national_id = $7, marital_status = $8,
        address = $9, city = $10, country = $11, department_id = $12,
        job_title_id = $13, manager_id = $14, hire_date = $15,
        employment_type = $16, work_location = $17, salary = $18, status = $19,
        updated_at = now()
      WHERE id = $20
    `,
			e.FirstName, e.LastName, e.Email, nullString(e.Phone), e.DateOfBirth,
			nullString(e.Gender), nullString(e.NationalID), nullString(e.MaritalStatus),
			nullString(e.Address), nullString(e.City), nullString(e.Country),
			e.DepartmentID, e.JobTitleID, e.ManagerID, e.HireDate,
			nullString(e.EmploymentType), nullString(e.WorkLocation), e.Salary,
			e.Status, e.ID,
		)
		if err != nil {
			return translateEmployeeUnique(err)
		}
		if cmd.RowsAffected() == 0 {
			return errs.New(errs.NotFound, "employee not found")
		}
		return recountDepartments(ctx, tx, oldDepartmentID, e.DepartmentID)
	})
	if err != nil {
		return Employee{}, err
	}
	return s.GetEmployee(ctx, e.ID)
}

// SoftDeleteEmployee flips status to inactive and recounts the department.
func (s *Store) SoftDeleteEmployee(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var departmentID *int64
		err := tx.QueryRow(ctx, `
      UPDATE employees SET status = $1, updated_at = now()
      WHERE id = $2
      RETURNING department_id
    `, EmployeeStatusInactive, id).Scan(&departmentID)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.New(errs.NotFound, "employee not found")
		}
		if err != nil {
			return err
		}
		if departmentID != nil {
			return recountDepartment(ctx, tx, *departmentID)
		}
		return nil
	})
}

// recountDepartment refreshes the denormalized employee_count from the
// source of truth. Full recount, never increment, to avoid drift.
func recountDepartment(ctx context.Context, q db.Querier, departmentID int64) error {
	_, err := q.Exec(ctx, `
    UPDATE departments
    SET employee_count = (
      SELECT COUNT(1) FROM employees
      WHERE department_id = $1 AND status = $2
    )
    WHERE id = $1
  `, departmentID, EmployeeStatusActive)
	return err
}

func recountDepartments(ctx context.Context, q db.Querier, old, current *int64) error {
	if old != nil {
		if err := recountDepartment(ctx, q, *old); err != nil {
			return err
		}
	}
	if current != nil && (old == nil || *current != *old) {
		return recountDepartment(ctx, q, *current)
	}
	return nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
