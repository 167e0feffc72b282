package notifications

import (
	"context"
	"errors"
	"log/slog"

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

// ListForUser returns the user's notifications, newest first, along with
// the unread count.
func (s *Store) ListForUser(ctx context.Context, userID int64, unreadOnly bool) ([]Notification, int64, error) {
	query := `
    SELECT id, user_id, title, message, type, is_read, COALESCE(link, ''), created_at
    FROM notifications
    WHERE user_id = $1`
	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := s.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.IsRead, &n.Link, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var unread int64
	err = s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND is_read = FALSE",
		userID,
	).Scan(&unread)
	return out, unread, err
}

func (s *Store) Create(ctx context.Context, n Notification) (Notification, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO notifications (user_id, title, message, type, link)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, is_read, created_at
  `, n.UserID, n.Title, n.Message, n.Type, nullString(n.Link)).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	return n, err
}

// UserIDForEmployee resolves the active user account linked to an employee.
func (s *Store) UserIDForEmployee(ctx context.Context, employeeID int64) (int64, error) {
	var userID int64
	err := s.DB.QueryRow(ctx,
		"SELECT id FROM users WHERE employee_id = $1 AND is_active = TRUE",
		employeeID,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errs.New(errs.NotFound, "no user account linked to employee")
	}
	return userID, err
}

// Notify inserts a notification and only logs on failure. Domain writes
// must not fail because a side-channel insert did.
func (s *Store) Notify(ctx context.Context, logger *slog.Logger, userID int64, title, message, typ string) {
	_, err := s.Create(ctx, Notification{UserID: userID, Title: title, Message: message, Type: typ})
	if err != nil {
		logger.Error("notification insert failed", "user_id", userID, "error", err)
	}
}

// MarkRead marks one notification read. The user filter keeps users from
// touching each other's notifications.
func (s *Store) MarkRead(ctx context.Context, id, userID int64) error {
	cmd, err := s.DB.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2",
		id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errs.New(errs.NotFound, "notification not found")
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	cmd, err := s.DB.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE",
		userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
