package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

type fakeVerifier struct {
	claims map[string]any
	err    error
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, token string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func authProbe(t *testing.T, verifier TokenVerifier, header string) *domain.User {
	t.Helper()
	var got *domain.User
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFromContext(r.Context())
	}))
	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestAuthAttachesUser(t *testing.T) {
	v := &fakeVerifier{claims: map[string]any{"sub": "uid-1", "email": "a@b.c", "name": "Abhi"}}
	user := authProbe(t, v, "Bearer sometoken")
	if user == nil || user.UID != "uid-1" || user.Email != "a@b.c" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthMissingHeaderIsAnonymous(t *testing.T) {
	if user := authProbe(t, &fakeVerifier{}, ""); user != nil {
		t.Fatalf("expected anonymous, got %+v", user)
	}
}

func TestAuthInvalidTokenIsAnonymous(t *testing.T) {
	v := &fakeVerifier{err: errors.New("bad token")}
	if user := authProbe(t, v, "Bearer junk"); user != nil {
		t.Fatalf("expected anonymous, got %+v", user)
	}
}

func TestAuthNonBearerSchemeIsAnonymous(t *testing.T) {
	v := &fakeVerifier{claims: map[string]any{"sub": "uid-1"}}
	if user := authProbe(t, v, "Basic dXNlcjpwdw=="); user != nil {
		t.Fatalf("expected anonymous, got %+v", user)
	}
}

func TestAuthMissingSubIsAnonymous(t *testing.T) {
	v := &fakeVerifier{claims: map[string]any{"email": "a@b.c"}}
	if user := authProbe(t, v, "Bearer sometoken"); user != nil {
		t.Fatalf("expected anonymous, got %+v", user)
	}
}
