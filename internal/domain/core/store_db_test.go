package core

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
	dbURL := testDatabaseURL(t)
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

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return dbURL
}

func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func testEmployee(suffix string) Employee {
	return Employee{
		FirstName: "Test",
		LastName:  "Person",
		Email:     "person-" + suffix + "@example.com",
		Status:    EmployeeStatusActive,
	}
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	suffix := uniqueSuffix()

	first, err := store.CreateEmployee(ctx, testEmployee(suffix))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second := testEmployee(suffix)
	second.FirstName = "Other"
	if _, err := store.CreateEmployee(ctx, second); errs.KindOf(err) != errs.Duplicate {
		t.Fatalf("expected Duplicate for reused email, got %v", err)
	}

	if first.EmployeeNumber == "" {
		t.Fatal("expected a generated employee number")
	}
}

func TestDepartmentRecountFollowsEmployee(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	suffix := uniqueSuffix()

	deptA, err := store.CreateDepartment(ctx, Department{Name: "Recount A " + suffix})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	deptB, err := store.CreateDepartment(ctx, Department{Name: "Recount B " + suffix})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}

	emp := testEmployee(suffix)
	emp.DepartmentID = &deptA.ID
	emp, err = store.CreateEmployee(ctx, emp)
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	assertCount(t, store, deptA.ID, 1)
	assertCount(t, store, deptB.ID, 0)

	emp.DepartmentID = &deptB.ID
	if _, err := store.UpdateEmployee(ctx, emp, &deptA.ID); err != nil {
		t.Fatalf("move employee: %v", err)
	}
	assertCount(t, store, deptA.ID, 0)
	assertCount(t, store, deptB.ID, 1)

	if err := store.SoftDeleteEmployee(ctx, emp.ID); err != nil {
		t.Fatalf("soft delete employee: %v", err)
	}
	assertCount(t, store, deptB.ID, 0)
}

func assertCount(t *testing.T, store *Store, departmentID int64, want int) {
	t.Helper()
	dept, err := store.GetDepartment(context.Background(), departmentID)
	if err != nil {
		t.Fatalf("get department: %v", err)
	}
	if dept.EmployeeCount != want {
		t.Fatalf("department %d: expected employee_count %d, got %d", departmentID, want, dept.EmployeeCount)
	}
}

func TestDeleteDepartmentBlockedByActiveEmployees(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	suffix := uniqueSuffix()

	dept, err := store.CreateDepartment(ctx, Department{Name: "Delete Guard " + suffix})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	emp := testEmployee(suffix)
	emp.DepartmentID = &dept.ID
	emp, err = store.CreateEmployee(ctx, emp)
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	if err := store.SoftDeleteDepartment(ctx, dept.ID); errs.KindOf(err) != errs.Conflict {
		t.Fatalf("expected Conflict while employees remain, got %v", err)
	}

	if err := store.SoftDeleteEmployee(ctx, emp.ID); err != nil {
		t.Fatalf("soft delete employee: %v", err)
	}
	if err := store.SoftDeleteDepartment(ctx, dept.ID); err != nil {
		t.Fatalf("expected delete to succeed once empty, got %v", err)
	}
}
