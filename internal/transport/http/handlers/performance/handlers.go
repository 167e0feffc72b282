package performancehandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/performance"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Store *performance.Store
}

func NewHandler(store *performance.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{reviewID}", h.handleGet)
		r.With(middleware.Require(auth.ActionManageReviews)).Post("/", h.handleCreate)
		r.With(middleware.Require(auth.ActionManageReviews)).Put("/{reviewID}", h.handleUpdate)
		r.With(middleware.Require(auth.ActionManageReviews)).Put("/{reviewID}/submit", h.handleSubmit)
		r.With(middleware.Require(auth.ActionApproveReviews)).Put("/{reviewID}/approve", h.handleApprove)
	})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	filter := performance.Filter{
		Status:       strings.TrimSpace(r.URL.Query().Get("status")),
		ReviewPeriod: strings.TrimSpace(r.URL.Query().Get("review_period")),
	}
	if auth.Can(actor, auth.ActionViewPerformance, 0) || auth.Can(actor, auth.ActionManageReviews, 0) {
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

	reviews, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, reviews, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	id, ok := pathID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid review id", reqID)
		return
	}
	review, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	if !auth.Can(actor, auth.ActionViewPerformance, review.EmployeeID) &&
		!auth.Can(actor, auth.ActionManageReviews, 0) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return
	}
	api.Success(w, review, reqID)
}

type reviewPayload struct {
	EmployeeID          *int64   `json:"employee_id"`
	ReviewPeriod        *string  `json:"review_period"`
	ReviewDate          *string  `json:"review_date"`
	OverallRating       *float64 `json:"overall_rating"`
	Strengths           *string  `json:"strengths"`
	AreasForImprovement *string  `json:"areas_for_improvement"`
	Goals               *string  `json:"goals"`
	Comments            *string  `json:"comments"`
}

func (p reviewPayload) apply(review *performance.Review, v *shared.Validator) {
	if p.ReviewPeriod != nil {
		review.ReviewPeriod = strings.TrimSpace(*p.ReviewPeriod)
	}
	if p.ReviewDate != nil {
		if date, ok := v.Date("review_date", *p.ReviewDate); ok {
			review.ReviewDate = &date
		}
	}
	if p.OverallRating != nil {
		v.Range("overall_rating", *p.OverallRating, 1, 5, "must be between 1 and 5")
		review.OverallRating = p.OverallRating
	}
	if p.Strengths != nil {
		review.Strengths = strings.TrimSpace(*p.Strengths)
	}
	if p.AreasForImprovement != nil {
		review.AreasForImprovement = strings.TrimSpace(*p.AreasForImprovement)
	}
	if p.Goals != nil {
		review.Goals = strings.TrimSpace(*p.Goals)
	}
	if p.Comments != nil {
		review.Comments = strings.TrimSpace(*p.Comments)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	if actor.EmployeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "no_employee", "reviewer account has no linked employee record", reqID)
		return
	}

	var payload reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	review := performance.Review{ReviewerID: actor.EmployeeID}
	v := shared.NewValidator()
	payload.apply(&review, v)
	if payload.EmployeeID == nil || *payload.EmployeeID <= 0 {
		v.Add("employee_id", "employee id is required")
	} else {
		review.EmployeeID = *payload.EmployeeID
	}
	v.Required("review_period", review.ReviewPeriod, "review period is required")
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Store.Create(r.Context(), review)
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
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid review id", reqID)
		return
	}

	var payload reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	review, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	v := shared.NewValidator()
	payload.apply(&review, v)
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Store.Update(r.Context(), review)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, performance.StatusSubmitted)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, performance.StatusApproved)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request, to string) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid review id", reqID)
		return
	}
	review, err := h.Store.Advance(r.Context(), id, to)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, review, reqID)
}
