package payrollhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms/internal/transport/http/api"
)

func TestCreateRequiresBasicSalary(t *testing.T) {
	h := NewHandler(nil)

	body := `{"employee_id": 3, "month": 6, "year": 2026, "allowances": 500}`
	req := httptest.NewRequest(http.MethodPost, "/payroll", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.handleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without basic_salary, got %d", rec.Code)
	}
	var envelope api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Error == nil || !strings.Contains(envelope.Error.Message, "basic_salary") {
		t.Fatalf("expected a basic_salary error, got %+v", envelope.Error)
	}
}

func TestCreateRejectsBadPeriod(t *testing.T) {
	h := NewHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing month", `{"employee_id": 3, "year": 2026, "basic_salary": 1000}`},
		{"month out of range", `{"employee_id": 3, "month": 13, "year": 2026, "basic_salary": 1000}`},
		{"missing year", `{"employee_id": 3, "month": 6, "basic_salary": 1000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/payroll", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.handleCreate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
