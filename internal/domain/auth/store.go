package auth

import (
	"context"
	"errors"

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

type credentials struct {
	User         User
	PasswordHash string
}

// FindActiveByEmail returns the user row with its password hash for login.
func (s *Store) FindActiveByEmail(ctx context.Context, email string) (User, string, error) {
	var c credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, employee_id, is_active, last_login, created_at
    FROM users
    WHERE email = $1 AND is_active = TRUE
  `, email).Scan(
		&c.User.ID, &c.User.Email, &c.PasswordHash, &c.User.Role,
		&c.User.EmployeeID, &c.User.IsActive, &c.User.LastLogin, &c.User.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", errs.New(errs.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return User{}, "", err
	}
	return c.User, c.PasswordHash, nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, role, employee_id, is_active, last_login, created_at
    FROM users
    WHERE id = $1
  `, userID).Scan(&u.ID, &u.Email, &u.Role, &u.EmployeeID, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, errs.New(errs.NotFound, "user not found")
	}
	return u, err
}

// EmployeeSummaryFor loads the linked employee fields, or an empty summary
// when the user has no employee record.
func (s *Store) EmployeeSummaryFor(ctx context.Context, employeeID int64) (EmployeeSummary, error) {
	var out EmployeeSummary
	err := s.DB.QueryRow(ctx, `
    SELECT e.first_name, e.last_name, e.employee_number,
           COALESCE(e.phone, ''),
           e.department_id, COALESCE(d.name, ''),
           e.job_title_id, COALESCE(j.title, '')
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN job_titles j ON e.job_title_id = j.id
    WHERE e.id = $1
  `, employeeID).Scan(
		&out.FirstName, &out.LastName, &out.EmployeeNumber, &out.Phone,
		&out.DepartmentID, &out.DepartmentName, &out.JobTitleID, &out.JobTitle,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeSummary{}, nil
	}
	return out, err
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, role string, employeeID *int64) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id, is_active)
    VALUES ($1, $2, $3, $4, TRUE)
    RETURNING id, email, role, employee_id, is_active, last_login, created_at
  `, email, passwordHash, role, employeeID).Scan(
		&u.ID, &u.Email, &u.Role, &u.EmployeeID, &u.IsActive, &u.LastLogin, &u.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return User{}, errs.Wrap(errs.Duplicate, "email already registered", err)
	}
	return u, err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}
