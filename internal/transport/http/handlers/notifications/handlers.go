package notificationshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/notifications"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Store *notifications.Store
}

func NewHandler(store *notifications.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Put("/read-all", h.handleReadAll)
		r.Put("/{notificationID}/read", h.handleRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	unreadOnly := r.URL.Query().Get("unread") == "true"
	items, unread, err := h.Store.ListForUser(r.Context(), actor.UserID, unreadOnly)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, map[string]any{
		"notifications": items,
		"unread_count":  unread,
	}, reqID)
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "notificationID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid notification id", reqID)
		return
	}
	if err := h.Store.MarkRead(r.Context(), id, actor.UserID); err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.SuccessMessage(w, "notification marked as read", nil, reqID)
}

func (h *Handler) handleReadAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	updated, err := h.Store.MarkAllRead(r.Context(), actor.UserID)
	if err != nil {
		api.WriteError(w, r, err, reqID)
		return
	}
	api.Success(w, map[string]int64{"updated": updated}, reqID)
}
