package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobportal/backend/internal/auth"
	"github.com/jobportal/backend/internal/middleware"
	"github.com/jobportal/backend/internal/models"
)

type fakeResolver struct {
	users map[string]*models.User
}

func (f *fakeResolver) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil || user.ID != wantUser {
			t.Fatalf("handler did not receive the resolved user")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	resolver := &fakeResolver{users: map[string]*models.User{
		"u1": {ID: "u1", UserType: models.RoleJobseeker},
	}}
	protected := middleware.RequireAuth(tokens, resolver)(okHandler(t, "u1"))

	t.Run("missing header", func(t *testing.T) {
		resp := httptest.NewRecorder()
		protected.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp := httptest.NewRecorder()
		protected.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.Code)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		tok, _ := tokens.Issue("gone")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp := httptest.NewRecorder()
		protected.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when token's user no longer exists, got %d", resp.Code)
		}
	})

	t.Run("valid", func(t *testing.T) {
		tok, _ := tokens.Issue("u1")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp := httptest.NewRecorder()
		protected.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	resolver := &fakeResolver{users: map[string]*models.User{
		"seeker": {ID: "seeker", UserType: models.RoleJobseeker},
	}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	employerOnly := middleware.RequireAuth(tokens, resolver)(middleware.RequireRole(models.RoleEmployer)(next))
	seekerOnly := middleware.RequireAuth(tokens, resolver)(middleware.RequireRole(models.RoleJobseeker)(next))

	tok, _ := tokens.Issue("seeker")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp := httptest.NewRecorder()
	employerOnly.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp = httptest.NewRecorder()
	seekerOnly.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching role, got %d", resp.Code)
	}
}
