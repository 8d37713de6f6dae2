package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

// TokenVerifier validates a Firebase ID token and returns its claims.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (map[string]any, error)
}

type userContextKey struct{}

// Auth resolves the Bearer token into a user and stores it in the request
// context. It is deliberately soft: anonymous or invalid-token requests pass
// through with no user, and the route guard or handler decides what that
// means. Public surfaces (pricing, health) share the same chain.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := verifier.VerifyIDToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			user := userFromClaims(claims)
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func userFromClaims(claims map[string]any) *domain.User {
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return &domain.User{UID: sub, Email: email, Name: name}
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(userContextKey{}).(*domain.User); ok {
		return u
	}
	return nil
}

// ContextWithUser attaches a user to the context. Exposed for tests and the
// admin CLIs.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	if user == nil || user.UID == "" {
		return ctx
	}
	return context.WithValue(ctx, userContextKey{}, user)
}
