package handlers

import (
	"net/http"
	"testing"
)

func TestRegisterEndpoint(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"nuid":     "001234567",
			"name":     "Alice",
			"phone":    "555-0100",
			"email":    "alice@example.com",
			"password": "hunter22",
		})

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["userId"] == nil || body["userId"] == "" {
			t.Error("response should carry the new user id")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		h := newHarness(t)
		h.addUser(t, "alice@example.com", "pw")

		rec := h.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"nuid":     "001234567",
			"name":     "Alice",
			"phone":    "555-0100",
			"email":    "alice@example.com",
			"password": "hunter22",
		})

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"email": "alice@example.com",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestLoginEndpoint(t *testing.T) {
	h := newHarness(t)
	userID := h.addUser(t, "alice@example.com", "hunter22")

	t.Run("valid credentials return a token", func(t *testing.T) {
		rec := h.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"email":    "alice@example.com",
			"password": "hunter22",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		token, _ := body["token"].(string)
		if token == "" {
			t.Fatal("response should carry a token")
		}

		claims, err := h.tokens.Validate(token)
		if err != nil {
			t.Fatalf("returned token does not validate: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("token user id = %q, want %q", claims.UserID, userID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := h.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"email":    "alice@example.com",
			"password": "wrong",
		})

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestProfileEndpoints(t *testing.T) {
	h := newHarness(t)
	userID := h.addUser(t, "alice@example.com", "hunter22")
	token := h.tokenFor(t, userID)

	t.Run("get profile omits the password hash", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/users/profile", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["email"] != "alice@example.com" {
			t.Errorf("email = %v", body["email"])
		}
		if _, leaked := body["passwordHash"]; leaked {
			t.Error("password hash must not appear in the response")
		}
	})

	t.Run("update profile", func(t *testing.T) {
		rec := h.do(t, http.MethodPut, "/api/users/profile", token, map[string]any{
			"phone": "555-0199",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if h.users.users[userID].Phone != "555-0199" {
			t.Errorf("phone = %q", h.users.users[userID].Phone)
		}
	})

	t.Run("change password requires the current one", func(t *testing.T) {
		rec := h.do(t, http.MethodPut, "/api/users/password", token, map[string]any{
			"currentPassword": "wrong",
			"newPassword":     "new-password",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}
