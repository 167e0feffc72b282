package leave

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/db"
	"hrms/internal/domain/errs"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(pool)
}

func seedEmployee(t *testing.T, store *Store, first string) int64 {
	t.Helper()
	suffix := time.Now().UnixNano()
	var id int64
	err := store.DB.QueryRow(context.Background(), `
    INSERT INTO employees (employee_number, first_name, last_name, email, status)
    VALUES ($1, $2, 'Leavetaker', $3, 'active')
    RETURNING id
  `, fmt.Sprintf("LVT%d", suffix), first, fmt.Sprintf("leave-%s-%d@example.com", first, suffix)).Scan(&id)
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return id
}

func TestDecideStampsApproverEmployee(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	requesterID := seedEmployee(t, store, "Rory")
	approverID := seedEmployee(t, store, "Avery")

	created, err := store.Create(ctx, Request{
		EmployeeID: requesterID,
		LeaveType:  "annual",
		StartDate:  time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		DaysCount:  5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	decided, err := store.Decide(ctx, created.ID, StatusApproved, approverID, "enjoy", time.Now())
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.ApprovedBy == nil || *decided.ApprovedBy != approverID {
		t.Fatalf("expected approver employee %d, got %v", approverID, decided.ApprovedBy)
	}
	if decided.ApproverName == "" {
		t.Fatal("expected the approver name joined from employees")
	}

	if _, err := store.Decide(ctx, created.ID, StatusRejected, approverID, "", time.Now()); errs.KindOf(err) != errs.Conflict {
		t.Fatalf("expected Conflict for an already decided request, got %v", err)
	}
}
