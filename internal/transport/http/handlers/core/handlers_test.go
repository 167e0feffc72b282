package corehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateEmployeeRejectsSelfManager(t *testing.T) {
	h := NewHandler(nil, 10, 100)

	body := `{"manager_id": 7}`
	req := httptest.NewRequest(http.MethodPut, "/employees/7", strings.NewReader(body))
	req = withURLParam(req, "employeeID", "7")
	rec := httptest.NewRecorder()
	h.handleUpdateEmployee(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for self-managed employee, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "own manager") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdateDepartmentRejectsSelfParent(t *testing.T) {
	h := NewHandler(nil, 10, 100)

	body := `{"parent_id": 3}`
	req := httptest.NewRequest(http.MethodPut, "/departments/3", strings.NewReader(body))
	req = withURLParam(req, "departmentID", "3")
	rec := httptest.NewRecorder()
	h.handleUpdateDepartment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for self-parented department, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "own parent") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
