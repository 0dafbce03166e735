package handlers

import (
	"errors"
	"net/http"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/auth"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/services"
)

// RegisterHandler handles POST /api/users.
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.users.Register(r.Context(), input)
	if err != nil {
		switch {
		case services.IsValidation(err):
			jsonError(w, http.StatusBadRequest, "Missing required fields.")
		case errors.Is(err, services.ErrEmailExists):
			jsonError(w, http.StatusConflict, "Email already registered.")
		default:
			internalError(w, err)
		}
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"message": "Account created successfully.",
		"userId":  user.ID,
	})
}

// LoginHandler handles POST /api/users/login.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			jsonError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		internalError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		internalError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Login successful.",
		"token":   token,
		"user":    user,
	})
}

// GetProfileHandler handles GET /api/users/profile for the authenticated user.
func (h *Handler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "User not found.")
			return
		}
		internalError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		NUID  string `json:"nuid"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	err := h.users.UpdateProfile(r.Context(), userID, models.UserPatch{
		NUID:  req.NUID,
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFieldsToUpdate):
			jsonError(w, http.StatusBadRequest, "No fields to update.")
		case errors.Is(err, services.ErrNotFound):
			jsonError(w, http.StatusNotFound, "User not found.")
		default:
			internalError(w, err)
		}
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Profile updated successfully."})
}

// ChangePasswordHandler handles PUT /api/users/password.
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		jsonError(w, http.StatusBadRequest, "Current password and new password are required.")
		return
	}

	err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			jsonError(w, http.StatusUnauthorized, "Current password is incorrect.")
		case errors.Is(err, services.ErrNotFound):
			jsonError(w, http.StatusNotFound, "User not found.")
		default:
			internalError(w, err)
		}
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Password changed successfully."})
}
