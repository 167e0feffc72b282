package payrollhandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Store *payroll.Store
	Now   func() time.Time
}

func NewHandler(store *payroll.Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.With(middleware.Require(auth.ActionViewPayroll)).Get("/stats", h.handleStats)
		r.Get("/{payrollID}", h.handleGet)
		r.Get("/{payrollID}/payslip", h.handlePayslip)
		r.With(middleware.Require(auth.ActionManagePayroll)).Post("/", h.handleCreate)
		r.With(middleware.Require(auth.ActionManagePayroll)).Post("/generate-monthly", h.handleGenerateMonthly)
		r.With(middleware.Require(auth.ActionManagePayroll)).Put("/{payrollID}", h.handleUpdate)
		r.With(middleware.Require(auth.ActionManagePayroll)).Put("/{payrollID}/approve", h.handleApprove)
		r.With(middleware.Require(auth.ActionDeletePayroll)).Delete("/{payrollID}", h.handleDelete)
	})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "payrollID"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	filter := payroll.Filter{Status: strings.TrimSpace(r.URL.Query().Get("status"))}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Year = v
		}
	}

	if auth.Can(actor, auth.ActionViewPayroll, 0) {
		if raw := r.URL.Query().Get("employee_id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				filter.EmployeeID = id
			}
		}
	} else {
		if actor.EmployeeID == 0 {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
			return
		}
		filter.EmployeeID = actor.EmployeeID
	}

	records, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, records, reqID)
}

// loadVisible fetches the record and enforces the self-or-privileged view
// rule shared by the get and payslip routes.
func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request) (payroll.Record, bool) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	id, ok := pathID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid payroll id", reqID)
		return payroll.Record{}, false
	}
	record, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return payroll.Record{}, false
	}
	if !auth.Can(actor, auth.ActionViewPayroll, record.EmployeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return payroll.Record{}, false
	}
	return record, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadVisible(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=payslip-%d-%02d-%d.pdf", record.EmployeeID, record.Month, record.Year))
	if err := payroll.WritePayslip(w, record); err != nil {
		slog.Warn("payslip render failed", "payrollId", record.ID, "err", err)
	}
}

type payrollPayload struct {
	EmployeeID    *int64   `json:"employee_id"`
	Month         *int     `json:"month"`
	Year          *int     `json:"year"`
	BasicSalary   *float64 `json:"basic_salary"`
	Allowances    *float64 `json:"allowances"`
	Bonuses       *float64 `json:"bonuses"`
	Deductions    *float64 `json:"deductions"`
	OvertimeHours *float64 `json:"overtime_hours"`
	OvertimeRate  *float64 `json:"overtime_rate"`
	PaymentMethod *string  `json:"payment_method"`
	Status        *string  `json:"status"`
	Notes         *string  `json:"notes"`
}

func (p payrollPayload) apply(record *payroll.Record) {
	if p.BasicSalary != nil {
		record.BasicSalary = *p.BasicSalary
	}
	if p.Allowances != nil {
		record.Allowances = *p.Allowances
	}
	if p.Bonuses != nil {
		record.Bonuses = *p.Bonuses
	}
	if p.Deductions != nil {
		record.Deductions = *p.Deductions
	}
	if p.OvertimeHours != nil {
		record.OvertimeHours = *p.OvertimeHours
	}
	if p.OvertimeRate != nil {
		record.OvertimeAmount = record.OvertimeHours * *p.OvertimeRate
	}
	if p.PaymentMethod != nil {
		record.PaymentMethod = strings.TrimSpace(*p.PaymentMethod)
	}
	if p.Status != nil {
		record.Status = strings.ToLower(strings.TrimSpace(*p.Status))
	}
	if p.Notes != nil {
		record.Notes = strings.TrimSpace(*p.Notes)
	}
	record.NetSalary = payroll.NetSalary(record.BasicSalary, record.Allowances,
		record.Bonuses, record.OvertimeAmount, record.Deductions)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload payrollPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeID == nil || *payload.EmployeeID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee_id is required", reqID)
		return
	}
	if payload.Month == nil || *payload.Month < 1 || *payload.Month > 12 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "month must be between 1 and 12", reqID)
		return
	}
	if payload.Year == nil || *payload.Year <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "year is required", reqID)
		return
	}
	// Every other component defaults to zero; the basic salary never does.
	if payload.BasicSalary == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "basic_salary is required", reqID)
		return
	}

	record := payroll.Record{
		EmployeeID: *payload.EmployeeID,
		Month:      *payload.Month,
		Year:       *payload.Year,
	}
	payload.apply(&record)

	created, err := h.Store.Create(r.Context(), record)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid payroll id", reqID)
		return
	}

	var payload payrollPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	record, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	payload.apply(&record)

	updated, err := h.Store.Update(r.Context(), record)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid payroll id", reqID)
		return
	}
	record, err := h.Store.MarkPaid(r.Context(), id, h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "payroll marked as paid", record, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid payroll id", reqID)
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "payroll record deleted", nil, reqID)
}

type generateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h *Handler) handleGenerateMonthly(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Month < 1 || payload.Month > 12 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "month must be between 1 and 12", reqID)
		return
	}
	if payload.Year <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "year is required", reqID)
		return
	}

	generated, err := h.Store.GenerateMonthly(r.Context(), payload.Month, payload.Year)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, map[string]int{"generated": generated}, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	now := h.Now()
	month := int(now.Month())
	year := now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}

	stats, err := h.Store.MonthlyStats(r.Context(), month, year)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}
