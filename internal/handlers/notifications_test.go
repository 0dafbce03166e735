package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

func seedNotification(t *testing.T, h *harness, userID string, read bool) string {
	t.Helper()
	n := &models.Notification{
		UserID:   userID,
		ItemID:   "item-1",
		ItemName: "Blue backpack",
		Type:     models.NotificationNew,
		Read:     read,
	}
	if err := h.notifications.Insert(context.Background(), n); err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return n.ID
}

func TestListNotificationsEndpoint(t *testing.T) {
	h := newHarness(t)
	alice := h.addUser(t, "alice@example.com", "pw")
	bob := h.addUser(t, "bob@example.com", "pw")
	seedNotification(t, h, alice, false)
	seedNotification(t, h, alice, true)
	seedNotification(t, h, bob, false)

	t.Run("all", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/notifications", h.tokenFor(t, alice), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var notifications []models.Notification
		if err := json.Unmarshal(rec.Body.Bytes(), &notifications); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(notifications) != 2 {
			t.Errorf("count = %d, want only alice's 2", len(notifications))
		}
	})

	t.Run("unread only", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/notifications?unread=true", h.tokenFor(t, alice), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var notifications []models.Notification
		if err := json.Unmarshal(rec.Body.Bytes(), &notifications); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(notifications) != 1 {
			t.Errorf("count = %d, want 1 unread", len(notifications))
		}
	})
}

func TestMarkNotificationReadEndpoint(t *testing.T) {
	t.Run("recipient marks read", func(t *testing.T) {
		h := newHarness(t)
		alice := h.addUser(t, "alice@example.com", "pw")
		id := seedNotification(t, h, alice, false)

		rec := h.do(t, http.MethodPut, "/api/notifications/"+id+"/read", h.tokenFor(t, alice), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !h.notifications.byID[id].Read {
			t.Error("notification should be read")
		}
	})

	t.Run("non-recipient is denied", func(t *testing.T) {
		h := newHarness(t)
		alice := h.addUser(t, "alice@example.com", "pw")
		bob := h.addUser(t, "bob@example.com", "pw")
		id := seedNotification(t, h, alice, false)

		rec := h.do(t, http.MethodPut, "/api/notifications/"+id+"/read", h.tokenFor(t, bob), nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}

func TestMarkAllNotificationsReadEndpoint(t *testing.T) {
	h := newHarness(t)
	alice := h.addUser(t, "alice@example.com", "pw")
	bob := h.addUser(t, "bob@example.com", "pw")
	seedNotification(t, h, alice, false)
	seedNotification(t, h, alice, false)
	bobID := seedNotification(t, h, bob, false)

	rec := h.do(t, http.MethodPut, "/api/notifications/read-all", h.tokenFor(t, alice), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	for id, n := range h.notifications.byID {
		if n.UserID == alice && !n.Read {
			t.Errorf("notification %s should be read", id)
		}
	}
	if h.notifications.byID[bobID].Read {
		t.Error("other users' notifications must stay untouched")
	}
}
