package corehandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/core"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Store        *core.Store
	DefaultLimit int
	MaxLimit     int
}

func NewHandler(store *core.Store, defaultLimit, maxLimit int) *Handler {
	return &Handler{Store: store, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListEmployees)
		r.Get("/stats", h.handleEmployeeStats)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.Require(auth.ActionManageEmployees)).Post("/", h.handleCreateEmployee)
		r.With(middleware.Require(auth.ActionManageEmployees)).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.Require(auth.ActionDeleteEmployee)).Delete("/{employeeID}", h.handleDeleteEmployee)
	})

	r.Route("/departments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListDepartments)
		r.Get("/stats", h.handleDepartmentStats)
		r.Get("/{departmentID}", h.handleGetDepartment)
		r.Get("/{departmentID}/employees", h.handleDepartmentRoster)
		r.With(middleware.Require(auth.ActionManageDepartments)).Post("/", h.handleCreateDepartment)
		r.With(middleware.Require(auth.ActionManageDepartments)).Put("/{departmentID}", h.handleUpdateDepartment)
		r.With(middleware.Require(auth.ActionDeleteDepartment)).Delete("/{departmentID}", h.handleDeleteDepartment)
	})

	r.Route("/job-titles", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListJobTitles)
		r.Get("/{jobTitleID}", h.handleGetJobTitle)
		r.With(middleware.Require(auth.ActionManageJobTitles)).Post("/", h.handleCreateJobTitle)
		r.With(middleware.Require(auth.ActionManageJobTitles)).Put("/{jobTitleID}", h.handleUpdateJobTitle)
		r.With(middleware.Require(auth.ActionManageJobTitles)).Delete("/{jobTitleID}", h.handleDeleteJobTitle)
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	filter := core.EmployeeFilter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.DepartmentID = &id
		}
	}

	page := shared.ParsePagination(r, h.DefaultLimit, h.MaxLimit)
	employees, total, err := h.Store.ListEmployees(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, map[string]any{
		"employees":  employees,
		"pagination": page.Meta(total),
	}, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee id", reqID)
		return
	}
	employee, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, employee, reqID)
}

type employeePayload struct {
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	DateOfBirth    *string  `json:"date_of_birth"`
	Gender         *string  `json:"gender"`
	NationalID     *string  `json:"national_id"`
	MaritalStatus  *string  `json:"marital_status"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	Country        *string  `json:"country"`
	DepartmentID   *int64   `json:"department_id"`
	JobTitleID     *int64   `json:"job_title_id"`
	ManagerID      *int64   `json:"manager_id"`
	HireDate       *string  `json:"hire_date"`
	EmploymentType *string  `json:"employment_type"`
	WorkLocation   *string  `json:"work_location"`
	Salary         *float64 `json:"salary"`
	Status         *string  `json:"status"`
}

// apply overlays the payload's present fields onto the employee.
func (p employeePayload) apply(e *core.Employee, v *shared.Validator) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&e.FirstName, p.FirstName)
	setString(&e.LastName, p.LastName)
	if p.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	setString(&e.Phone, p.Phone)
	setString(&e.Gender, p.Gender)
	setString(&e.NationalID, p.NationalID)
	setString(&e.MaritalStatus, p.MaritalStatus)
	setString(&e.Address, p.Address)
	setString(&e.City, p.City)
	setString(&e.Country, p.Country)
	setString(&e.EmploymentType, p.EmploymentType)
	setString(&e.WorkLocation, p.WorkLocation)
	if p.DepartmentID != nil {
		e.DepartmentID = optionalID(*p.DepartmentID)
	}
	if p.JobTitleID != nil {
		e.JobTitleID = optionalID(*p.JobTitleID)
	}
	if p.ManagerID != nil {
		e.ManagerID = optionalID(*p.ManagerID)
	}
	if p.Salary != nil {
		e.Salary = p.Salary
	}
	if p.Status != nil {
		e.Status = strings.ToLower(strings.TrimSpace(*p.Status))
		v.Enum("status", e.Status, core.EmployeeStatuses, "must be one of active, inactive, terminated")
	}
	if p.DateOfBirth != nil {
		if date, ok := v.Date("date_of_birth", *p.DateOfBirth); ok {
			e.DateOfBirth = &date
		}
	}
	if p.HireDate != nil {
		if date, ok := v.Date("hire_date", *p.HireDate); ok {
			e.HireDate = &date
		}
	}
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	var employee core.Employee
	employee.Status = core.EmployeeStatusActive
	v := shared.NewValidator()
	payload.apply(&employee, v)
	v.Required("first_name", employee.FirstName, "first name is required")
	v.Required("last_name", employee.LastName, "last name is required")
	v.Required("email", employee.Email, "email is required")
	v.Email("email", employee.Email)
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Store.CreateEmployee(r.Context(), employee)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee id", reqID)
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.ManagerID != nil && *payload.ManagerID == id {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "an employee cannot be their own manager", reqID)
		return
	}

	employee, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	oldDepartmentID := employee.DepartmentID

	v := shared.NewValidator()
	payload.apply(&employee, v)
	v.Required("first_name", employee.FirstName, "first name is required")
	v.Required("last_name", employee.LastName, "last name is required")
	v.Required("email", employee.Email, "email is required")
	v.Email("email", employee.Email)
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Store.UpdateEmployee(r.Context(), employee, oldDepartmentID)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee id", reqID)
		return
	}
	if err := h.Store.SoftDeleteEmployee(r.Context(), id); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "employee deactivated", nil, reqID)
}

func (h *Handler) handleEmployeeStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Store.EmployeeStatsOverview(r.Context())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid department id", reqID)
		return
	}
	department, err := h.Store.GetDepartment(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, department, reqID)
}

func (h *Handler) handleDepartmentRoster(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid department id", reqID)
		return
	}
	if _, err := h.Store.GetDepartment(r.Context(), id); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	roster, err := h.Store.DepartmentRoster(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, roster, reqID)
}

type departmentPayload struct {
	Name        *string  `json:"name"`
	Code        *string  `json:"code"`
	Description *string  `json:"description"`
	ParentID    *int64   `json:"parent_id"`
	ManagerID   *int64   `json:"manager_id"`
	Budget      *float64 `json:"budget"`
}

func (p departmentPayload) apply(d *core.Department) {
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Code != nil {
		d.Code = strings.ToUpper(strings.TrimSpace(*p.Code))
	}
	if p.Description != nil {
		d.Description = strings.TrimSpace(*p.Description)
	}
	if p.ParentID != nil {
		d.ParentID = optionalID(*p.ParentID)
	}
	if p.ManagerID != nil {
		d.ManagerID = optionalID(*p.ManagerID)
	}
	if p.Budget != nil {
		d.Budget = *p.Budget
	}
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	var department core.Department
	payload.apply(&department)
	v := shared.NewValidator()
	v.Required("name", department.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Store.CreateDepartment(r.Context(), department)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid department id", reqID)
		return
	}

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.ParentID != nil && *payload.ParentID == id {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a department cannot be its own parent", reqID)
		return
	}

	department, err := h.Store.GetDepartment(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	payload.apply(&department)
	v := shared.NewValidator()
	v.Required("name", department.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Store.UpdateDepartment(r.Context(), department)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid department id", reqID)
		return
	}
	if err := h.Store.SoftDeleteDepartment(r.Context(), id); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "department deactivated", nil, reqID)
}

func (h *Handler) handleDepartmentStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Store.DepartmentStatsOverview(r.Context())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleListJobTitles(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	titles, err := h.Store.ListJobTitles(r.Context())
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, titles, reqID)
}

func (h *Handler) handleGetJobTitle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "jobTitleID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid job title id", reqID)
		return
	}
	title, err := h.Store.GetJobTitle(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, title, reqID)
}

type jobTitlePayload struct {
	Title            *string  `json:"title"`
	Code             *string  `json:"code"`
	DepartmentID     *int64   `json:"department_id"`
	Level            *string  `json:"level"`
	Description      *string  `json:"description"`
	Responsibilities *string  `json:"responsibilities"`
	Requirements     *string  `json:"requirements"`
	MinSalary        *float64 `json:"min_salary"`
	MaxSalary        *float64 `json:"max_salary"`
}

func (p jobTitlePayload) apply(j *core.JobTitle) {
	if p.Title != nil {
		j.Title = strings.TrimSpace(*p.Title)
	}
	if p.Code != nil {
		j.Code = strings.ToUpper(strings.TrimSpace(*p.Code))
	}
	if p.DepartmentID != nil {
		j.DepartmentID = optionalID(*p.DepartmentID)
	}
	if p.Level != nil {
		j.Level = strings.TrimSpace(*p.Level)
	}
	if p.Description != nil {
		j.Description = strings.TrimSpace(*p.Description)
	}
	if p.Responsibilities != nil {
		j.Responsibilities = strings.TrimSpace(*p.Responsibilities)
	}
	if p.Requirements != nil {
		j.Requirements = strings.TrimSpace(*p.Requirements)
	}
	if p.MinSalary != nil {
		j.MinSalary = p.MinSalary
	}
	if p.MaxSalary != nil {
		j.MaxSalary = p.MaxSalary
	}
}

func (h *Handler) handleCreateJobTitle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload jobTitlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	var title core.JobTitle
	payload.apply(&title)
	v := shared.NewValidator()
	v.Required("title", title.Title, "title is required")
	if title.MinSalary != nil && title.MaxSalary != nil && *title.MaxSalary < *title.MinSalary {
		v.Add("max_salary", "must be greater than or equal to min_salary")
	}
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Store.CreateJobTitle(r.Context(), title)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdateJobTitle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "jobTitleID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid job title id", reqID)
		return
	}

	var payload jobTitlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	title, err := h.Store.GetJobTitle(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	payload.apply(&title)
	v := shared.NewValidator()
	v.Required("title", title.Title, "title is required")
	if title.MinSalary != nil && title.MaxSalary != nil && *title.MaxSalary < *title.MinSalary {
		v.Add("max_salary", "must be greater than or equal to min_salary")
	}
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Store.UpdateJobTitle(r.Context(), title)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDeleteJobTitle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "jobTitleID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid job title id", reqID)
		return
	}
	if err := h.Store.SoftDeleteJobTitle(r.Context(), id); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "job title deactivated", nil, reqID)
}
