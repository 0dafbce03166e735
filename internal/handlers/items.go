package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/auth"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/services"
)

const maxImageSize = 10 << 20 // 10 MB

// ListItemsHandler handles GET /api/items with filtering and pagination.
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.ItemFilter{
		OwnerID:   q.Get("userId"),
		Status:    q.Get("status"),
		Location:  q.Get("location"),
		Category:  q.Get("category"),
		DateFound: q.Get("dateFound"),
		Search:    q.Get("search"),
		Page:      1,
		Limit:     12,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	items, total, err := h.items.ListItems(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	jsonResponse(w, http.StatusOK, map[string]any{
		"items": items,
		"pagination": map[string]any{
			"currentPage": filter.Page,
			"totalPages":  totalPages,
			"totalCount":  total,
			"limit":       filter.Limit,
			"hasNextPage": filter.Page < totalPages,
			"hasPrevPage": filter.Page > 1,
		},
	})
}

// GetItemHandler handles GET /api/items/{id}.
func (h *Handler) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validID(id) {
		jsonError(w, http.StatusBadRequest, "Invalid item id.")
		return
	}

	item, err := h.items.GetItem(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// CreateItemHandler handles POST /api/items. The request is a multipart form
// with the item fields and an optional image; the image is staged in object
// storage before validation, so a validation failure must clean it up.
func (h *Handler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	creatorID := auth.UserID(r.Context())

	draft, err := h.decodeItemDraft(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	item, notified, err := h.items.CreateItem(r.Context(), draft, creatorID)
	if services.IsValidation(err) {
		// The caller is responsible for removing the staged image on
		// this failure path.
		if draft.Image != nil && h.images != nil {
			if delErr := h.images.DeleteImage(r.Context(), *draft.Image); delErr != nil {
				log.Error().Err(delErr).Msg("Failed to delete orphaned image")
			}
		}
		jsonError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"message":       "Item created successfully.",
		"itemId":        item.ID,
		"item":          item,
		"notifiedUsers": notified,
	})
}

// decodeItemDraft reads an item draft from either a multipart form (with an
// optional staged image upload) or a plain JSON body.
func (h *Handler) decodeItemDraft(w http.ResponseWriter, r *http.Request) (models.ItemDraft, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var draft models.ItemDraft
		err := decodeJSON(r, &draft)
		return draft, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return models.ItemDraft{}, err
	}

	draft := models.ItemDraft{
		Name:        r.FormValue("name"),
		Location:    r.FormValue("location"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		DateFound:   r.FormValue("dateFound"),
		Status:      r.FormValue("status"),
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return draft, nil
	}
	if err != nil {
		return models.ItemDraft{}, err
	}
	defer file.Close()

	if h.images == nil {
		return models.ItemDraft{}, errors.New("image uploads are not configured")
	}

	imageURL, err := h.images.UploadImage(r.Context(), file, header.Filename,
		header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		return models.ItemDraft{}, err
	}
	draft.Image = &imageURL
	return draft, nil
}

// updateItemRequest uses json.RawMessage for the image so an explicit null
// (clear the image) can be told apart from an absent field.
type updateItemRequest struct {
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	DateFound   string          `json:"dateFound"`
	Status      string          `json:"status"`
	Image       json.RawMessage `json:"image"`
}

// UpdateItemHandler handles PUT /api/items/{id}: owner edits and non-owner
// claims.
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validID(id) {
		jsonError(w, http.StatusBadRequest, "Invalid item id.")
		return
	}
	requesterID := auth.UserID(r.Context())

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := models.ItemPatch{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
		DateFound:   req.DateFound,
		Status:      req.Status,
	}
	if req.Image != nil {
		patch.ImageSet = true
		var image *string
		if err := json.Unmarshal(req.Image, &image); err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		patch.Image = image
	}

	err := h.items.UpdateItem(r.Context(), id, requesterID, patch)
	if err != nil {
		switch reason, forbidden := services.IsForbidden(err); {
		case errors.Is(err, services.ErrNotFound):
			jsonError(w, http.StatusNotFound, "Item not found.")
		case errors.Is(err, services.ErrNoFieldsToUpdate):
			jsonError(w, http.StatusBadRequest, "No fields to update.")
		case forbidden && reason == services.ReasonClaimOnly:
			jsonError(w, http.StatusForbidden, "You can only claim items. Only the owner can update other fields.")
		case forbidden:
			jsonError(w, http.StatusForbidden, "You can only update your own items.")
		default:
			internalError(w, err)
		}
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Item updated successfully."})
}

// DeleteItemHandler handles DELETE /api/items/{id}.
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validID(id) {
		jsonError(w, http.StatusBadRequest, "Invalid item id.")
		return
	}
	requesterID := auth.UserID(r.Context())

	err := h.items.DeleteItem(r.Context(), id, requesterID)
	if err != nil {
		switch _, forbidden := services.IsForbidden(err); {
		case errors.Is(err, services.ErrNotFound):
			jsonError(w, http.StatusNotFound, "Item not found.")
		case forbidden:
			jsonError(w, http.StatusForbidden, "You can only delete your own items.")
		default:
			internalError(w, err)
		}
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Item deleted successfully."})
}

// ListUserItemsHandler handles GET /api/items/user/{userId}.
func (h *Handler) ListUserItemsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !validID(userID) {
		jsonError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	items, err := h.items.ListItemsByOwner(r.Context(), userID)
	if err != nil {
		internalError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}
