package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrms/internal/db"
	"hrms/internal/domain/errs"
)

const departmentColumns = `
    d.id, d.name, COALESCE(d.code, ''), COALESCE(d.description, ''),
    d.parent_id, d.manager_id, d.budget, d.employee_count, d.is_active,
    COALESCE(m.first_name || ' ' || m.last_name, ''), COALESCE(p.name, ''),
    d.created_at, d.updated_at`

const departmentJoins = `
    FROM departments d
    LEFT JOIN employees m ON d.manager_id = m.id
    LEFT JOIN departments p ON d.parent_id = p.id`

func scanDepartment(row pgx.Row) (Department, error) {
	var d Department
	err := row.Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.ParentID, &d.ManagerID,
		&d.Budget, &d.EmployeeCount, &d.IsActive, &d.ManagerName, &d.ParentName,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+departmentColumns+departmentJoins+" WHERE d.is_active ORDER BY d.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (Department, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+departmentColumns+departmentJoins+" WHERE d.id = $1 AND d.is_active", id)
	d, err := scanDepartment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, errs.New(errs.NotFound, "department not found")
	}
	return d, err
}

// DepartmentRoster lists the active employees of a department for the
// department detail view.
func (s *Store) DepartmentRoster(ctx context.Context, departmentID int64) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_number, first_name, last_name, email, COALESCE(phone, '')
    FROM employees
    WHERE department_id = $1 AND status = $2
    ORDER BY first_name
  `, departmentID, EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeNumber, &e.FirstName, &e.LastName, &e.Email, &e.Phone); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, code, description, parent_id, manager_id, budget, is_active)
    VALUES ($1, $2, $3, $4, $5, $6, TRUE)
    RETURNING id, employee_count, is_active, created_at, updated_at
  `, d.Name, nullString(d.Code), nullString(d.Description), d.ParentID, d.ManagerID, d.Budget).
		Scan(&d.ID, &d.EmployeeCount, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return Department{}, errs.Wrap(errs.Duplicate, "department code already in use", err)
	}
	if err != nil {
		return Department{}, err
	}
	return d, nil
}

// UpdateDepartment writes the mutable columns. employee_count is derived and
// never written here.
func (s *Store) UpdateDepartment(ctx context.Context, d Department) (Department, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments SET
      name = $1, code = $2, description = $3, parent_id = $4, manager_id = $5,
      budget = $6, updated_at = now()
    WHERE id = $7
  `, d.Name, nullString(d.Code), nullString(d.Description), d.ParentID, d.ManagerID, d.Budget, d.ID)
	if db.IsUniqueViolation(err) {
		return Department{}, errs.Wrap(errs.Duplicate, "department code already in use", err)
	}
	if err != nil {
		return Department{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Department{}, errs.New(errs.NotFound, "department not found")
	}
	return s.GetDepartment(ctx, d.ID)
}

// SoftDeleteDepartment deactivates the department. Blocked with Conflict
// while the department still has active employees; the check and the flip
// share one transaction so a concurrent hire cannot slip between them.
func (s *Store) SoftDeleteDepartment(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		var active int
		err := tx.QueryRow(ctx, `
      SELECT COUNT(1) FROM employees WHERE department_id = $1 AND status = $2
    `, id, EmployeeStatusActive).Scan(&active)
		if err != nil {
			return err
		}
		if active > 0 {
			return errs.New(errs.Conflict, "cannot delete a department with active employees")
		}

		cmd, err := tx.Exec(ctx, "UPDATE departments SET is_active = FALSE, updated_at = now() WHERE id = $1 AND is_active", id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return errs.New(errs.NotFound, "department not found")
		}
		return nil
	})
}
