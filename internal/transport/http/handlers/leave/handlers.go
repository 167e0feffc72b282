package leavehandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/notifications"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

// Store is the slice of the leave store this handler needs.
type Store interface {
	List(ctx context.Context, filter leave.Filter) ([]leave.Request, error)
	Create(ctx context.Context, r leave.Request) (leave.Request, error)
	Decide(ctx context.Context, id int64, status string, approverEmployeeID int64, notes string, decidedAt time.Time) (leave.Request, error)
}

// Notifier delivers decision notifications to the requester's user account.
type Notifier interface {
	UserIDForEmployee(ctx context.Context, employeeID int64) (int64, error)
	Notify(ctx context.Context, logger *slog.Logger, userID int64, title, message, typ string)
}

type Handler struct {
	Store  Store
	Notify Notifier
	Logger *slog.Logger
	Now    func() time.Time
}

func NewHandler(store Store, notify Notifier, logger *slog.Logger) *Handler {
	return &Handler{Store: store, Notify: notify, Logger: logger, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.With(middleware.Require(auth.ActionManageLeave)).Put("/{leaveID}/approve", h.handleApprove)
		r.With(middleware.Require(auth.ActionManageLeave)).Put("/{leaveID}/reject", h.handleReject)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	filter := leave.Filter{Status: strings.TrimSpace(r.URL.Query().Get("status"))}
	if auth.Can(actor, auth.ActionManageLeave, 0) {
		if raw := r.URL.Query().Get("employee_id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				filter.EmployeeID = id
			}
		}
	} else {
		if actor.EmployeeID == 0 {
			api.Fail(w, http.StatusBadRequest, "no_employee", "user account has no linked employee record", reqID)
			return
		}
		filter.EmployeeID = actor.EmployeeID
	}

	requests, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, requests, reqID)
}

type createRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	if actor.EmployeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user account has no linked employee record", reqID)
		return
	}

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("leave_type", payload.LeaveType, "leave type is required")
	start, startOK := v.Date("start_date", payload.StartDate)
	end, endOK := v.Date("end_date", payload.EndDate)
	if v.Reject(w, reqID) {
		return
	}

	var days int
	if startOK && endOK {
		var err error
		days, err = leave.CalculateDays(start, end)
		if err != nil {
			api.WriteError(w, r, err, reqID)
			return
		}
	}

	created, err := h.Store.Create(r.Context(), leave.Request{
		EmployeeID: actor.EmployeeID,
		LeaveType:  strings.TrimSpace(payload.LeaveType),
		StartDate:  start,
		EndDate:    end,
		DaysCount:  days,
		Reason:     strings.TrimSpace(payload.Reason),
	})
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	// approved_by references the employees table, so the deciding account
	// must be linked to an employee record.
	if actor.EmployeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user account has no linked employee record", reqID)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "leaveID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid leave request id", reqID)
		return
	}

	var payload decisionRequest
	if r.Body != nil {
		// The notes body is optional.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	decided, err := h.Store.Decide(r.Context(), id, status, actor.EmployeeID, strings.TrimSpace(payload.Notes), h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}

	h.notifyEmployee(r, decided, status)
	api.Success(w, decided, reqID)
}

// notifyEmployee tells the requester's user account about the decision, if
// one exists.
func (h *Handler) notifyEmployee(r *http.Request, decided leave.Request, status string) {
	if h.Notify == nil {
		return
	}
	userID, err := h.Notify.UserIDForEmployee(r.Context(), decided.EmployeeID)
	if err != nil {
		return
	}

	title := "Leave request approved"
	typ := notifications.TypeSuccess
	if status == leave.StatusRejected {
		title = "Leave request rejected"
		typ = notifications.TypeWarning
	}
	message := "Your " + decided.LeaveType + " leave request (" +
		decided.StartDate.Format("2006-01-02") + " to " +
		decided.EndDate.Format("2006-01-02") + ") was " + status + "."
	h.Notify.Notify(r.Context(), h.Logger, userID, title, message, typ)
}
