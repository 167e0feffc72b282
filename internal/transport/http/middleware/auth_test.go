package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrms/internal/domain/auth"
)

func TestAuthMiddlewareSetsActor(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Actor{UserID: 1, Role: auth.RoleHR, EmployeeID: 5}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			t.Fatal("expected actor in context")
		}
		if actor.UserID != 1 || actor.Role != auth.RoleHR || actor.EmployeeID != 5 {
			t.Fatalf("unexpected actor: %+v", actor)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetActor(r.Context()); ok {
			t.Fatal("did not expect actor in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetActor(r.Context()); ok {
			t.Fatal("did not expect actor for a garbage token")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireEnforcesPolicy(t *testing.T) {
	secret := "test-secret"
	wrapped := Auth(secret)(Require(auth.ActionManageEmployees)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	employeeToken, err := auth.GenerateToken(secret, auth.Actor{UserID: 2, Role: auth.RoleEmployee, EmployeeID: 9}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee role, got %d", rec.Code)
	}

	hrToken, err := auth.GenerateToken(secret, auth.Actor{UserID: 3, Role: auth.RoleHR}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+hrToken)
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for hr role, got %d", rec.Code)
	}
}
