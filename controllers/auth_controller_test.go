package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/services"
)

type fakeAuthenticator struct {
	users map[string]*models.StaffUser
	errs  map[string]error
}

func (f *fakeAuthenticator) UserForToken(ctx context.Context, token string) (*models.StaffUser, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, services.ErrInvalidToken
}

func TestRequireAuthTokenMissingHeader(t *testing.T) {
	handler := RequireAuthToken(&fakeAuthenticator{}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/mobile/chat/conversations/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthTokenNonBearerScheme(t *testing.T) {
	handler := RequireAuthToken(&fakeAuthenticator{}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest("GET", "/api/mobile/chat/conversations/", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthTokenUnknownToken(t *testing.T) {
	handler := RequireAuthToken(&fakeAuthenticator{}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest("GET", "/api/mobile/chat/conversations/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestRequireAuthTokenNonStaff(t *testing.T) {
	auth := &fakeAuthenticator{errs: map[string]error{"demoted": services.ErrNotStaff}}
	handler := RequireAuthToken(auth, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest("GET", "/api/mobile/chat/conversations/", nil)
	req.Header.Set("Authorization", "Bearer demoted")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuthTokenInjectsUser(t *testing.T) {
	staff := &models.StaffUser{ID: "staff-7", Email: "ana@buceofeliz.com", IsStaff: true}
	auth := &fakeAuthenticator{users: map[string]*models.StaffUser{"valid-token": staff}}

	var seen *models.StaffUser
	handler := RequireAuthToken(auth, func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/mobile/chat/conversations/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ana@buceofeliz.com", seen.Email)
}

func TestUserFromContextEmpty(t *testing.T) {
	assert.Nil(t, UserFromContext(context.Background()))
}
