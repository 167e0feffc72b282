package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hrms/internal/domain/errs"
)

type Error struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func SuccessMessage(w http.ResponseWriter, message string, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// kindStatus maps domain error kinds to HTTP statuses. Anything unmapped
// is a server fault.
var kindStatus = map[errs.Kind]int{
	errs.Validation:      http.StatusBadRequest,
	errs.Unauthenticated: http.StatusUnauthorized,
	errs.Forbidden:       http.StatusForbidden,
	errs.NotFound:        http.StatusNotFound,
	errs.Duplicate:       http.StatusConflict,
	errs.Conflict:        http.StatusConflict,
}

var kindCode = map[errs.Kind]string{
	errs.Validation:      "validation_error",
	errs.Unauthenticated: "unauthorized",
	errs.Forbidden:       "forbidden",
	errs.NotFound:        "not_found",
	errs.Duplicate:       "duplicate",
	errs.Conflict:        "conflict",
}

// WriteError renders a domain error. Unexpected errors are logged with the
// underlying cause and reported to the client with a generic message only.
func WriteError(w http.ResponseWriter, r *http.Request, err error, requestID string) {
	kind := errs.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"requestId", requestID,
			"error", err,
		)
		Fail(w, status, "internal_error", "internal server error", requestID)
		return
	}
	Fail(w, status, kindCode[kind], errs.Message(err), requestID)
}
