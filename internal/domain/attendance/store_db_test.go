package attendance

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

func seedEmployee(t *testing.T, store *Store) int64 {
	t.Helper()
	suffix := time.Now().UnixNano()
	var id int64
	err := store.DB.QueryRow(context.Background(), `
    INSERT INTO employees (employee_number, first_name, last_name, email, status)
    VALUES ($1, 'Clock', 'Watcher', $2, 'active')
    RETURNING id
  `, fmt.Sprintf("TST%d", suffix), fmt.Sprintf("clock-%d@example.com", suffix)).Scan(&id)
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return id
}

func TestCheckInTwiceSameDay(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	employeeID := seedEmployee(t, store)
	now := time.Now()

	if _, err := store.CheckIn(ctx, employeeID, now); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	_, err := store.CheckIn(ctx, employeeID, now)
	if errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected Validation for a second check-in, got %v", err)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	store := testStore(t)
	employeeID := seedEmployee(t, store)

	_, err := store.CheckOut(context.Background(), employeeID, time.Now())
	if errs.KindOf(err) != errs.NotFound {
		t.Fatalf("expected NotFound without a check-in, got %v", err)
	}
}

func TestCheckOutDerivesHours(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	employeeID := seedEmployee(t, store)

	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8*time.Hour + 30*time.Minute)

	if _, err := store.CheckIn(ctx, employeeID, checkIn); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	rec, err := store.CheckOut(ctx, employeeID, checkOut)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if rec.WorkHours == nil || *rec.WorkHours != 8.5 {
		t.Fatalf("expected 8.5 work hours, got %v", rec.WorkHours)
	}

	if _, err := store.CheckOut(ctx, employeeID, checkOut.Add(time.Minute)); errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected Validation for a second check-out, got %v", err)
	}
}
