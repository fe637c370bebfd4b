package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/services"
)

type contextKey string

const userContextKey contextKey = "staffUser"

// TokenAuthenticator resolves bearer tokens to staff users.
type TokenAuthenticator interface {
	UserForToken(ctx context.Context, token string) (*models.StaffUser, error)
}

// AuthController handles mobile login.
type AuthController struct {
	Auth *services.AuthService
}

// NewAuthController initializes the auth controller
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// HandleLogin - POST /api/mobile/login/
func (c *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || request.Password == "" {
		http.Error(w, `{"error": "Email and password required"}`, http.StatusBadRequest)
		return
	}

	user, err := c.Auth.Authenticate(r.Context(), email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			http.Error(w, `{"error": "Invalid credentials"}`, http.StatusUnauthorized)
		case errors.Is(err, services.ErrNotStaff):
			http.Error(w, `{"error": "Staff access required"}`, http.StatusForbidden)
		default:
			log.Printf("❌ Login failed for %s: %v", email, err)
			http.Error(w, `{"error": "Login failed"}`, http.StatusInternalServerError)
		}
		return
	}

	token, err := c.Auth.GetOrCreateToken(r.Context(), user)
	if err != nil {
		log.Printf("❌ Token issue failed for %s: %v", email, err)
		http.Error(w, `{"error": "Login failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token.Key,
		"user": map[string]interface{}{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// RequireAuthToken wraps a handler with Bearer token authentication.
func RequireAuthToken(auth TokenAuthenticator, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, `{"error": "Authorization required"}`, http.StatusUnauthorized)
			return
		}

		user, err := auth.UserForToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, services.ErrNotStaff) {
				http.Error(w, `{"error": "Unauthorized"}`, http.StatusForbidden)
				return
			}
			http.Error(w, `{"error": "Invalid token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the authenticated staff user, or nil.
func UserFromContext(ctx context.Context) *models.StaffUser {
	user, _ := ctx.Value(userContextKey).(*models.StaffUser)
	return user
}
