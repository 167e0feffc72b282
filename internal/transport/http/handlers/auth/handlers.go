package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Store    *auth.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *auth.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.With(middleware.RequireAuth).Get("/me", h.handleMe)
		r.With(middleware.Require(auth.ActionManageUsers)).Post("/register", h.handleRegister)
		r.With(middleware.RequireAuth).Post("/logout", h.handleLogout)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userProfile struct {
	auth.User
	Employee *auth.EmployeeSummary `json:"employee,omitempty"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	user, hash, err := h.Store.FindActiveByEmail(r.Context(), payload.Email)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid email or password", reqID)
		return
	}

	actor := actorFor(user)
	token, err := auth.GenerateToken(h.Secret, actor, h.TokenTTL)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}

	profile, err := h.profileFor(r, user)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}

	api.SuccessMessage(w, "login successful", map[string]any{
		"token": token,
		"user":  profile,
	}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	user, err := h.Store.GetUser(r.Context(), actor.UserID)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	profile, err := h.profileFor(r, user)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, profile, reqID)
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employee_id"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if payload.Role != "" && !auth.ValidRole(payload.Role) {
		v.Add("role", "must be one of admin, hr, manager, employee, finance")
	}
	if v.Reject(w, reqID) {
		return
	}
	if payload.Role == "" {
		payload.Role = auth.RoleEmployee
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	user, err := h.Store.CreateUser(r.Context(), payload.Email, hash, payload.Role, payload.EmployeeID)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Created(w, user, reqID)
}

// handleLogout exists for API symmetry. Tokens are stateless, so the client
// discards its copy and the server has nothing to invalidate.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.SuccessMessage(w, "logged out", nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) profileFor(r *http.Request, user auth.User) (userProfile, error) {
	profile := userProfile{User: user}
	if user.EmployeeID != nil {
		summary, err := h.Store.EmployeeSummaryFor(r.Context(), *user.EmployeeID)
		if err != nil {
			return userProfile{}, err
		}
		profile.Employee = &summary
	}
	return profile, nil
}

func actorFor(user auth.User) auth.Actor {
	actor := auth.Actor{UserID: user.ID, Role: user.Role}
	if user.EmployeeID != nil {
		actor.EmployeeID = *user.EmployeeID
	}
	return actor
}
