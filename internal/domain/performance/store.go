package performance

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const reviewColumns = `
    pr.id, pr.employee_id, pr.reviewer_id, pr.review_period, pr.review_date,
    pr.overall_rating, COALESCE(pr.strengths, ''),
    COALESCE(pr.areas_for_improvement, ''), COALESCE(pr.goals, ''),
    COALESCE(pr.comments, ''), pr.status,
    e.first_name || ' ' || e.last_name,
    r.first_name || ' ' || r.last_name, pr.created_at`

const reviewJoins = `
    FROM performance_reviews pr
    JOIN employees e ON pr.employee_id = e.id
    JOIN employees r ON pr.reviewer_id = r.id`

func scanReview(row pgx.Row) (Review, error) {
	var rv Review
	err := row.Scan(
		&rv.ID, &rv.EmployeeID, &rv.ReviewerID, &rv.ReviewPeriod, &rv.ReviewDate,
		&rv.OverallRating, &rv.Strengths, &rv.AreasForImprovement, &rv.Goals,
		&rv.Comments, &rv.Status, &rv.EmployeeName, &rv.ReviewerName, &rv.CreatedAt,
	)
	return rv, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Review, error) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.EmployeeID != 0 {
		args = append(args, filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("pr.employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("pr.status = $%d", len(args)))
	}
	if filter.ReviewPeriod != "" {
		args = append(args, filter.ReviewPeriod)
		clauses = append(clauses, fmt.Sprintf("pr.review_period = $%d", len(args)))
	}

	query := "SELECT" + reviewColumns + reviewJoins
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY pr.review_date DESC NULLS LAST, pr.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Review, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+reviewColumns+reviewJoins+" WHERE pr.id = $1", id)
	rv, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, errs.New(errs.NotFound, "performance review not found")
	}
	return rv, err
}

func (s *Store) Create(ctx context.Context, rv Review) (Review, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews (employee_id, reviewer_id, review_period,
      review_date, overall_rating, strengths, areas_for_improvement, goals,
      comments, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, rv.EmployeeID, rv.ReviewerID, rv.ReviewPeriod, rv.ReviewDate,
		rv.OverallRating, nullString(rv.Strengths), nullString(rv.AreasForImprovement),
		nullString(rv.Goals), nullString(rv.Comments), StatusDraft).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return Review{}, err
	}
	rv.Status = StatusDraft
	return rv, nil
}

func (s *Store) Update(ctx context.Context, rv Review) (Review, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE performance_reviews SET
      review_period = $1, review_date = $2, overall_rating = $3,
      strengths = $4, areas_for_improvement = $5, goals = $6, comments = $7,
      updated_at = now()
    WHERE id = $8
  `, rv.ReviewPeriod, rv.ReviewDate, rv.OverallRating, nullString(rv.Strengths),
		nullString(rv.AreasForImprovement), nullString(rv.Goals),
		nullString(rv.Comments), rv.ID)
	if err != nil {
		return Review{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Review{}, errs.New(errs.NotFound, "performance review not found")
	}
	return s.Get(ctx, rv.ID)
}

// Advance moves a review along the draft -> submitted -> approved chain.
// An illegal transition is a state conflict, not a validation failure.
func (s *Store) Advance(ctx context.Context, id int64, to string) (Review, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if !CanTransition(current.Status, to) {
		return Review{}, errs.Newf(errs.Conflict, "review cannot move from %s to %s", current.Status, to)
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE performance_reviews SET status = $1, updated_at = now()
    WHERE id = $2 AND status = $3
  `, to, id, current.Status)
	if err != nil {
		return Review{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Review{}, errs.Newf(errs.Conflict, "review cannot move from %s to %s", current.Status, to)
	}
	return s.Get(ctx, id)
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
