package http

import (
	"net/http"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/service"

	"github.com/gorilla/mux"
)

// NotificationHandler exposes the in-app notification endpoints
type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationListResponse struct {
	Items []domain.Notification `json:"items"`
	Total int32                 `json:"total"`
}

// HandleListNotifications lists the caller's notifications
func (h *NotificationHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	q := r.URL.Query()

	items, total, err := h.notifications.List(r.Context(), claims.UserID, parseInt32(q.Get("page")), parseInt32(q.Get("page_size")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notificationListResponse{Items: items, Total: total})
}

// HandleMarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) HandleMarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := h.notifications.MarkAsRead(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
