// Package handlers contains the thin HTTP transport over the item, user and
// notification services. Handlers decode requests, call a service and
// translate the result (or error kind) to a status code; all business rules
// live below this layer.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/auth"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/services"
)

// ImageStore stages uploaded item images and cleans up orphans.
type ImageStore interface {
	UploadImage(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

// Handler bundles the HTTP handlers and their collaborators.
type Handler struct {
	items         *services.ItemService
	users         *services.UserService
	notifications *services.NotificationService
	images        ImageStore
	tokens        *auth.JWTManager
}

// NewHandler creates a Handler. images may be nil when no object storage is
// configured; image uploads are then rejected.
func NewHandler(
	items *services.ItemService,
	users *services.UserService,
	notifications *services.NotificationService,
	images ImageStore,
	tokens *auth.JWTManager,
) *Handler {
	return &Handler{
		items:         items,
		users:         users,
		notifications: notifications,
		images:        images,
		tokens:        tokens,
	}
}

// HealthCheckHandler handles GET /health.
func (h *Handler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validID reports whether id parses as a UUID. Invalid ids are rejected at
// the transport layer before any store lookup.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
