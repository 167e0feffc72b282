package leavehandler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/middleware"
)

type fakeStore struct {
	decideCalls int
	approverID  int64
	status      string
	leaveID     int64
}

func (f *fakeStore) List(ctx context.Context, filter leave.Filter) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, r leave.Request) (leave.Request, error) {
	return r, nil
}

func (f *fakeStore) Decide(ctx context.Context, id int64, status string, approverEmployeeID int64, notes string, decidedAt time.Time) (leave.Request, error) {
	f.decideCalls++
	f.leaveID = id
	f.status = status
	f.approverID = approverEmployeeID
	return leave.Request{ID: id, EmployeeID: 9, Status: status,
		StartDate: decidedAt, EndDate: decidedAt, LeaveType: "annual"}, nil
}

type fakeNotifier struct {
	notifiedUserID int64
}

func (f *fakeNotifier) UserIDForEmployee(ctx context.Context, employeeID int64) (int64, error) {
	return employeeID + 100, nil
}

func (f *fakeNotifier) Notify(ctx context.Context, logger *slog.Logger, userID int64, title, message, typ string) {
	f.notifiedUserID = userID
}

func testRouter(t *testing.T, secret string, store Store, notify Notifier) http.Handler {
	t.Helper()
	h := NewHandler(store, notify, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Use(middleware.Auth(secret))
	h.RegisterRoutes(r)
	return r
}

func TestApproveStampsApproverEmployee(t *testing.T) {
	secret := "test-secret"
	store := &fakeStore{}
	notify := &fakeNotifier{}
	router := testRouter(t, secret, store, notify)

	token, err := auth.GenerateToken(secret, auth.Actor{UserID: 7, Role: auth.RoleHR, EmployeeID: 42}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/leaves/5/approve", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.decideCalls != 1 || store.leaveID != 5 || store.status != leave.StatusApproved {
		t.Fatalf("unexpected decide call: %+v", store)
	}
	if store.approverID != 42 {
		t.Fatalf("expected the approver's employee id 42, got %d", store.approverID)
	}
	if notify.notifiedUserID != 109 {
		t.Fatalf("expected the requester's user account to be notified, got %d", notify.notifiedUserID)
	}
}

func TestDecisionRequiresLinkedEmployee(t *testing.T) {
	secret := "test-secret"
	store := &fakeStore{}
	router := testRouter(t, secret, store, &fakeNotifier{})

	token, err := auth.GenerateToken(secret, auth.Actor{UserID: 1, Role: auth.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/leaves/5/reject", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an approver with no employee record, got %d", rec.Code)
	}
	if store.decideCalls != 0 {
		t.Fatalf("expected no decide call, got %d", store.decideCalls)
	}
}
