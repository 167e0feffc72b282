package recruitment

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/db"
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

func seedReviewer(t *testing.T, store *Store) int64 {
	t.Helper()
	var id int64
	err := store.DB.QueryRow(context.Background(), `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, 'x', 'hr')
    RETURNING id
  `, fmt.Sprintf("reviewer-%d@example.com", time.Now().UnixNano())).Scan(&id)
	if err != nil {
		t.Fatalf("seed reviewer: %v", err)
	}
	return id
}

func TestReviewKeepsInterviewDetails(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	now := time.Now()

	posting, err := store.CreatePosting(ctx, Posting{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("create posting: %v", err)
	}
	application, err := store.Apply(ctx, Application{
		JobPostingID:  posting.ID,
		ApplicantName: "Ada Applicant",
		Email:         fmt.Sprintf("ada-%d@example.com", now.UnixNano()),
	}, now)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	reviewerID := seedReviewer(t, store)
	interviewDate := now.Add(72 * time.Hour)
	if err := store.ReviewApplication(ctx, application.ID, ApplicationInterview,
		&interviewDate, "phone screen booked", reviewerID, now); err != nil {
		t.Fatalf("first review: %v", err)
	}

	// A later status move without interview fields keeps the earlier ones.
	if err := store.ReviewApplication(ctx, application.ID, ApplicationAccepted,
		nil, "", reviewerID, now); err != nil {
		t.Fatalf("second review: %v", err)
	}

	applications, err := store.ListApplications(ctx, posting.ID, "")
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	var found *Application
	for i := range applications {
		if applications[i].ID == application.ID {
			found = &applications[i]
		}
	}
	if found == nil {
		t.Fatal("application missing from list")
	}
	if found.Status != ApplicationAccepted {
		t.Fatalf("expected accepted, got %s", found.Status)
	}
	if found.InterviewDate == nil {
		t.Fatal("interview date was lost by the status-only review")
	}
	if found.InterviewNotes != "phone screen booked" {
		t.Fatalf("interview notes were lost, got %q", found.InterviewNotes)
	}
}
