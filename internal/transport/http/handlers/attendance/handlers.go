package attendancehandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Store *attendance.Store
	Now   func() time.Time
}

func NewHandler(store *attendance.Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/", h.handleList)
		r.Get("/stats", h.handleStats)
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	if actor.EmployeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user account has no linked employee record", reqID)
		return
	}

	record, err := h.Store.CheckIn(r.Context(), actor.EmployeeID, h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, record, reqID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	if actor.EmployeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user account has no linked employee record", reqID)
		return
	}

	record, err := h.Store.CheckOut(r.Context(), actor.EmployeeID, h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

// resolveEmployeeScope picks the employee whose records the actor may see.
// Privileged roles may pass employee_id; everyone else is pinned to self.
func resolveEmployeeScope(r *http.Request, actor auth.Actor) (int64, bool) {
	requested := int64(0)
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			requested = id
		}
	}
	if auth.Can(actor, auth.ActionViewAttendance, 0) {
		return requested, true
	}
	if actor.EmployeeID == 0 {
		return 0, false
	}
	if requested != 0 && requested != actor.EmployeeID {
		return 0, false
	}
	return actor.EmployeeID, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	employeeID, ok := resolveEmployeeScope(r, actor)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return
	}

	filter := attendance.Filter{EmployeeID: employeeID}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		date, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start_date", reqID)
			return
		}
		filter.StartDate = &date
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		date, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end_date", reqID)
			return
		}
		filter.EndDate = &date
	}

	records, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	employeeID, ok := resolveEmployeeScope(r, actor)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return
	}
	if employeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee_id is required", reqID)
		return
	}

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

	stats, err := h.Store.MonthlyStats(r.Context(), employeeID, month, year)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}
