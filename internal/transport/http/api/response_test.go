package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrms/internal/domain/errs"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"}, "req-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !envelope.Success || envelope.RequestID != "req-1" || envelope.Error != nil {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestWriteErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", errs.New(errs.Validation, "bad input"), http.StatusBadRequest, "validation_error"},
		{"unauthenticated", errs.New(errs.Unauthenticated, "who are you"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", errs.New(errs.Forbidden, "no"), http.StatusForbidden, "forbidden"},
		{"not found", errs.New(errs.NotFound, "missing"), http.StatusNotFound, "not_found"},
		{"duplicate", errs.New(errs.Duplicate, "exists"), http.StatusConflict, "duplicate"},
		{"conflict", errs.New(errs.Conflict, "stale"), http.StatusConflict, "conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteError(rec, req, tt.err, "req-2")

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var envelope Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if envelope.Success || envelope.Error == nil || envelope.Error.Code != tt.wantCode {
				t.Fatalf("unexpected envelope: %+v", envelope)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, errs.Wrap(errs.Unexpected, "db exploded: connection string with password", nil), "req-3")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Error == nil || envelope.Error.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %+v", envelope.Error)
	}
}
