package recruitmenthandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/recruitment"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

var applicationStatuses = []string{
	recruitment.ApplicationPending, recruitment.ApplicationReviewed,
	recruitment.ApplicationInterview, recruitment.ApplicationAccepted,
	recruitment.ApplicationRejected,
}

var postingStatuses = []string{
	recruitment.PostingOpen, recruitment.PostingClosed, recruitment.PostingFilled,
}

type Handler struct {
	Store *recruitment.Store
	Now   func() time.Time
}

func NewHandler(store *recruitment.Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment", func(r chi.Router) {
		// The postings listing and application submission are public so
		// candidates can apply without an account.
		r.Get("/postings", h.handleListPostings)
		r.Get("/postings/{postingID}", h.handleGetPosting)
		r.Post("/postings/{postingID}/apply", h.handleApply)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.With(middleware.Require(auth.ActionManagePostings)).Post("/postings", h.handleCreatePosting)
			r.With(middleware.Require(auth.ActionManagePostings)).Put("/postings/{postingID}", h.handleUpdatePosting)
			r.With(middleware.Require(auth.ActionManagePostings)).Get("/applications", h.handleListApplications)
			r.With(middleware.Require(auth.ActionManagePostings)).Put("/applications/{applicationID}", h.handleReviewApplication)
		})
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) handleListPostings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, authed := middleware.GetActor(r.Context())

	filter := recruitment.PostingFilter{PublicOnly: true}
	if authed && auth.Can(actor, auth.ActionManagePostings, 0) {
		filter.PublicOnly = false
		filter.Status = strings.TrimSpace(r.URL.Query().Get("status"))
	}
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.DepartmentID = id
		}
	}

	postings, err := h.Store.ListPostings(r.Context(), filter)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, postings, reqID)
}

func (h *Handler) handleGetPosting(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "postingID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid posting id", reqID)
		return
	}
	posting, err := h.Store.GetPosting(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}

	// Unauthenticated visitors only see open postings.
	actor, authed := middleware.GetActor(r.Context())
	if posting.Status != recruitment.PostingOpen {
		if !authed || !auth.Can(actor, auth.ActionManagePostings, 0) {
			api.Fail(w, http.StatusNotFound, "not_found", "job posting not found", reqID)
			return
		}
	}
	api.Success(w, posting, reqID)
}

type postingPayload struct {
	Title          *string `json:"title"`
	DepartmentID   *int64  `json:"department_id"`
	JobTitleID     *int64  `json:"job_title_id"`
	Description    *string `json:"description"`
	Requirements   *string `json:"requirements"`
	Vacancies      *int    `json:"vacancies"`
	SalaryRange    *string `json:"salary_range"`
	EmploymentType *string `json:"employment_type"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	ClosingDate    *string `json:"closing_date"`
}

func (p postingPayload) apply(posting *recruitment.Posting, v *shared.Validator) {
	if p.Title != nil {
		posting.Title = strings.TrimSpace(*p.Title)
	}
	if p.DepartmentID != nil {
		if *p.DepartmentID == 0 {
			posting.DepartmentID = nil
		} else {
			posting.DepartmentID = p.DepartmentID
		}
	}
	if p.JobTitleID != nil {
		if *p.JobTitleID == 0 {
			posting.JobTitleID = nil
		} else {
			posting.JobTitleID = p.JobTitleID
		}
	}
	if p.Description != nil {
		posting.Description = strings.TrimSpace(*p.Description)
	}
	if p.Requirements != nil {
		posting.Requirements = strings.TrimSpace(*p.Requirements)
	}
	if p.Vacancies != nil {
		if *p.Vacancies <= 0 {
			v.Add("vacancies", "must be a positive number")
		}
		posting.Vacancies = *p.Vacancies
	}
	if p.SalaryRange != nil {
		posting.SalaryRange = strings.TrimSpace(*p.SalaryRange)
	}
	if p.EmploymentType != nil {
		posting.EmploymentType = strings.TrimSpace(*p.EmploymentType)
	}
	if p.Location != nil {
		posting.Location = strings.TrimSpace(*p.Location)
	}
	if p.Status != nil {
		posting.Status = strings.ToLower(strings.TrimSpace(*p.Status))
		v.Enum("status", posting.Status, postingStatuses, "must be one of open, closed, filled")
	}
	if p.ClosingDate != nil {
		if date, ok := v.Date("closing_date", *p.ClosingDate); ok {
			posting.ClosingDate = &date
		}
	}
}

func (h *Handler) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload postingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	posting := recruitment.Posting{CreatedBy: &actor.UserID}
	v := shared.NewValidator()
	payload.apply(&posting, v)
	v.Required("title", posting.Title, "title is required")
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Store.CreatePosting(r.Context(), posting)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdatePosting(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "postingID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid posting id", reqID)
		return
	}

	var payload postingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	posting, err := h.Store.GetPosting(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	v := shared.NewValidator()
	payload.apply(&posting, v)
	v.Required("title", posting.Title, "title is required")
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Store.UpdatePosting(r.Context(), posting)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

type applyRequest struct {
	ApplicantName   string `json:"applicant_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ResumeFile      string `json:"resume_file"`
	CoverLetter     string `json:"cover_letter"`
	ExperienceYears *int   `json:"experience_years"`
	Education       string `json:"education"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	postingID, ok := pathID(r, "postingID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid posting id", reqID)
		return
	}

	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.ApplicantName = strings.TrimSpace(payload.ApplicantName)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Required("applicant_name", payload.ApplicantName, "applicant name is required")
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	if payload.ExperienceYears != nil && *payload.ExperienceYears < 0 {
		v.Add("experience_years", "must not be negative")
	}
	if v.Reject(w, reqID) {
		return
	}

	application, err := h.Store.Apply(r.Context(), recruitment.Application{
		JobPostingID:    postingID,
		ApplicantName:   payload.ApplicantName,
		Email:           payload.Email,
		Phone:           strings.TrimSpace(payload.Phone),
		ResumeFile:      strings.TrimSpace(payload.ResumeFile),
		CoverLetter:     payload.CoverLetter,
		ExperienceYears: payload.ExperienceYears,
		Education:       strings.TrimSpace(payload.Education),
	}, h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, application, reqID)
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var postingID int64
	if raw := r.URL.Query().Get("posting_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			postingID = id
		}
	}
	applications, err := h.Store.ListApplications(r.Context(), postingID, strings.TrimSpace(r.URL.Query().Get("status")))
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, applications, reqID)
}

type reviewRequest struct {
	Status         string `json:"status"`
	InterviewDate  string `json:"interview_date"`
	InterviewNotes string `json:"interview_notes"`
}

func (h *Handler) handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	id, ok := pathID(r, "applicationID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid application id", reqID)
		return
	}

	var payload reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.Status = strings.ToLower(strings.TrimSpace(payload.Status))

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, applicationStatuses, "must be one of pending, reviewed, interview, accepted, rejected")
	var interviewDate *time.Time
	if payload.InterviewDate != "" {
		if date, ok := v.Date("interview_date", payload.InterviewDate); ok {
			interviewDate = &date
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	err := h.Store.ReviewApplication(r.Context(), id, payload.Status, interviewDate,
		strings.TrimSpace(payload.InterviewNotes), actor.UserID, h.Now())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "application updated", nil, reqID)
}
