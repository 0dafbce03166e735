package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/auth"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/services"
)

// ListNotificationsHandler handles GET /api/notifications for the
// authenticated user. ?unread=true filters to unread notifications.
func (h *Handler) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.notifications.ListForUser(r.Context(), userID, unreadOnly)
	if err != nil {
		internalError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	jsonResponse(w, http.StatusOK, notifications)
}

// MarkNotificationReadHandler handles PUT /api/notifications/{id}/read.
func (h *Handler) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validID(id) {
		jsonError(w, http.StatusBadRequest, "Invalid notification id.")
		return
	}
	requesterID := auth.UserID(r.Context())

	err := h.notifications.MarkRead(r.Context(), id, requesterID)
	if err != nil {
		switch _, forbidden := services.IsForbidden(err); {
		case errors.Is(err, services.ErrNotFound):
			jsonError(w, http.StatusNotFound, "Notification not found.")
		case forbidden:
			jsonError(w, http.StatusForbidden, "You can only update your own notifications.")
		default:
			internalError(w, err)
		}
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Notification marked as read."})
}

// MarkAllNotificationsReadHandler handles PUT /api/notifications/read-all.
func (h *Handler) MarkAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	if err := h.notifications.MarkAllRead(r.Context(), userID); err != nil {
		internalError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "All notifications marked as read."})
}
