package traininghandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/training"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

var programStatuses = []string{
	training.StatusScheduled, training.StatusOngoing,
	training.StatusCompleted, training.StatusCancelled,
}

var completionStatuses = []string{
	training.CompletionEnrolled, training.CompletionCompleted,
	training.CompletionFailed, training.CompletionWithdrew,
}

type Handler struct {
	Store *training.Store
	Now   func() time.Time
}

func NewHandler(store *training.Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/training", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListPrograms)
		r.Get("/stats", h.handleStats)
		r.Get("/{programID}", h.handleGetProgram)
		r.Get("/{programID}/enrollments", h.handleListEnrollments)
		r.Post("/{programID}/enroll", h.handleEnroll)
		r.With(middleware.Require(auth.ActionManageTraining)).Post("/", h.handleCreateProgram)
		r.With(middleware.Require(auth.ActionManageTraining)).Put("/{programID}", h.handleUpdateProgram)
		r.With(middleware.Require(auth.ActionManageTraining)).Delete("/{programID}", h.handleDeleteProgram)
		r.With(middleware.Require(auth.ActionManageTraining)).Put("/enrollments/{enrollmentID}", h.handleUpdateEnrollment)
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	programs, err := h.Store.ListPrograms(r.Context(), strings.TrimSpace(r.URL.Query().Get("status")))
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, programs, reqID)
}

func (h *Handler) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "programID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid program id", reqID)
		return
	}
	program, err := h.Store.GetProgram(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, program, reqID)
}

type programPayload struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Trainer       *string  `json:"trainer"`
	Location      *string  `json:"location"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	DurationHours *int     `json:"duration_hours"`
	Capacity      *int     `json:"capacity"`
	Cost          *float64 `json:"cost"`
	Status        *string  `json:"status"`
}

func (p programPayload) apply(program *training.Program, v *shared.Validator) {
	if p.Name != nil {
		program.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		program.Description = strings.TrimSpace(*p.Description)
	}
	if p.Trainer != nil {
		program.Trainer = strings.TrimSpace(*p.Trainer)
	}
	if p.Location != nil {
		program.Location = strings.TrimSpace(*p.Location)
	}
	if p.StartDate != nil {
		if date, ok := v.Date("start_date", *p.StartDate); ok {
			program.StartDate = &date
		}
	}
	if p.EndDate != nil {
		if date, ok := v.Date("end_date", *p.EndDate); ok {
			program.EndDate = &date
		}
	}
	if program.StartDate != nil && program.EndDate != nil {
		v.DateOrder("start_date", *program.StartDate, "end_date", *program.EndDate)
	}
	if p.DurationHours != nil {
		program.DurationHours = p.DurationHours
	}
	if p.Capacity != nil {
		if *p.Capacity <= 0 {
			v.Add("capacity", "must be a positive number")
		}
		program.Capacity = p.Capacity
	}
	if p.Cost != nil {
		program.Cost = p.Cost
	}
	if p.Status != nil {
		program.Status = strings.ToLower(strings.TrimSpace(*p.Status))
		v.Enum("status", program.Status, programStatuses, "must be one of scheduled, ongoing, completed, cancelled")
	}
}

func (h *Handler) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload programPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	var program training.Program
	v := shared.NewValidator()
	payload.apply(&program, v)
	v.Required("name", program.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Store.CreateProgram(r.Context(), program)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "programID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid program id", reqID)
		return
	}

	var payload programPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	program, err := h.Store.GetProgram(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	v := shared.NewValidator()
	payload.apply(&program, v)
	v.Required("name", program.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Store.UpdateProgram(r.Context(), program)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "programID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid program id", reqID)
		return
	}
	if err := h.Store.DeleteProgram(r.Context(), id); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "training program deleted", nil, reqID)
}

type enrollRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	programID, ok := pathID(r, "programID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid program id", reqID)
		return
	}

	var payload enrollRequest
	if r.Body != nil {
		// Body is optional; self-enrollment sends no employee id.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	employeeID := payload.EmployeeID
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if employeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee_id is required", reqID)
		return
	}
	if employeeID != actor.EmployeeID && !auth.Can(actor, auth.ActionManageTraining, 0) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return
	}

	enrollment, err := h.Store.Enroll(r.Context(), programID, employeeID)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, enrollment, reqID)
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	programID, ok := pathID(r, "programID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid program id", reqID)
		return
	}
	if _, err := h.Store.GetProgram(r.Context(), programID); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	enrollments, err := h.Store.ListEnrollments(r.Context(), programID)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, enrollments, reqID)
}

type enrollmentUpdate struct {
	CompletionStatus  string   `json:"completion_status"`
	Score             *float64 `json:"score"`
	Feedback          string   `json:"feedback"`
	CertificateIssued bool     `json:"certificate_issued"`
}

func (h *Handler) handleUpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "enrollmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid enrollment id", reqID)
		return
	}

	var payload enrollmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.CompletionStatus = strings.ToLower(strings.TrimSpace(payload.CompletionStatus))

	v := shared.NewValidator()
	v.Required("completion_status", payload.CompletionStatus, "completion status is required")
	v.Enum("completion_status", payload.CompletionStatus, completionStatuses, "must be one of enrolled, completed, failed, withdrew")
	if payload.Score != nil {
		v.Range("score", *payload.Score, 0, 100, "must be between 0 and 100")
	}
	if v.Reject(w, reqID) {
		return
	}

	enrollment, err := h.Store.UpdateEnrollment(r.Context(), id, payload.CompletionStatus,
		payload.Score, strings.TrimSpace(payload.Feedback), payload.CertificateIssued, h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, enrollment, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Store.OverviewStats(r.Context())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}
