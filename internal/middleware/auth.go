package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jobportal/backend/internal/models"
	"github.com/jobportal/backend/internal/respond"
)

type ctxKey int

const userKey ctxKey = iota

// TokenVerifier validates a bearer token and returns the user id it carries.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserResolver loads the user referenced by a verified token.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth validates the Authorization header and injects the
// resolved user into the request context. A token whose user no longer
// exists is rejected the same way as an invalid one.
func RequireAuth(tokens TokenVerifier, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "access denied, no token provided")
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || user == nil {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRole rejects requests whose authenticated user has a different
// role. It must be mounted after RequireAuth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "access denied")
				return
			}
			if user.UserType != role {
				respond.Error(w, http.StatusForbidden, "forbidden", "access denied, "+string(role)+" only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithUser returns a context carrying user as the authenticated
// identity.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user placed by RequireAuth, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
