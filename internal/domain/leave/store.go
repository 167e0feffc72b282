package leave

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

const requestColumns = `
    lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date,
    lr.days_count, COALESCE(lr.reason, ''), lr.status, lr.approved_by,
    lr.approval_date, COALESCE(lr.approval_notes, ''),
    e.first_name || ' ' || e.last_name,
    COALESCE(a.first_name || ' ' || a.last_name, ''), lr.created_at`

const requestJoins = `
    FROM leave_requests lr
    JOIN employees e ON lr.employee_id = e.id
    LEFT JOIN employees a ON lr.approved_by = a.id`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.LeaveType, &r.StartDate, &r.EndDate,
		&r.DaysCount, &r.Reason, &r.Status, &r.ApprovedBy, &r.ApprovalDate,
		&r.ApprovalNotes, &r.EmployeeName, &r.ApproverName, &r.CreatedAt,
	)
	return r, err
}

func (s *Store) Create(ctx context.Context, r Request) (Request, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days_count, reason, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, created_at
  `, r.EmployeeID, r.LeaveType, r.StartDate, r.EndDate, r.DaysCount,
		nullString(r.Reason), StatusPending).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return Request{}, err
	}
	r.Status = StatusPending
	return r, nil
}

func (s *Store) Get(ctx context.Context, id int64) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+requestColumns+requestJoins+" WHERE lr.id = $1", id)
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, errs.New(errs.NotFound, "leave request not found")
	}
	return r, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Request, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.EmployeeID != 0 {
		args = append(args, filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("lr.employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("lr.status = $%d", len(args)))
	}

	query := "SELECT" + requestColumns + requestJoins
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY lr.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Decide approves or rejects a pending request. Only pending requests can be
// decided; anything else is a state conflict. The approver is an employee id,
// approved_by references the employees table.
func (s *Store) Decide(ctx context.Context, id int64, status string, approverEmployeeID int64, notes string, decidedAt time.Time) (Request, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, approved_by = $2, approval_date = $3, approval_notes = $4, updated_at = now()
    WHERE id = $5 AND status = $6
  `, status, approverEmployeeID, decidedAt, nullString(notes), id, StatusPending)
	if err != nil {
		return Request{}, err
	}
	if cmd.RowsAffected() == 0 {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return Request{}, getErr
		}
		return Request{}, errs.New(errs.Conflict, "leave request already decided")
	}
	return s.Get(ctx, id)
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
