package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

type fakeChecker struct {
	allow  map[domain.Plan]bool
	panics bool
	syncs  int
	checks int
}

func (f *fakeChecker) Sync(ctx context.Context, user *domain.User) {
	f.syncs++
	if f.panics {
		panic("store exploded")
	}
}

func (f *fakeChecker) HasPlanAccess(ctx context.Context, user *domain.User, plan domain.Plan) bool {
	f.checks++
	if f.panics {
		panic("store exploded")
	}
	return f.allow[plan.Canonical()]
}

type mapKV map[string]string

func (m mapKV) Get(key string) string { return m[key] }
func (m mapKV) SetIfUnset(key, value string) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}
func (m mapKV) Set(key, value string) { m[key] = value }

func newGuard(checker *fakeChecker, kv mapKV) *Guard {
	return &Guard{
		Checker: checker,
		Cache:   kv,
		Login:   "/login",
		Denied:  "/pricing",
		Logger:  zerolog.Nop(),
	}
}

func serve(t *testing.T, g *Guard, plan domain.Plan, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	handler := g.RequirePlan(plan)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/intermediate-content", nil)
	if user != nil {
		req = req.WithContext(ContextWithUser(req.Context(), user))
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

var guardUser = &domain.User{UID: "abc"}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	checker := &fakeChecker{}
	rr := serve(t, newGuard(checker, mapKV{}), domain.PlanIntermediate, nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected login redirect, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if checker.syncs != 0 || checker.checks != 0 {
		t.Fatal("anonymous request must bypass the check entirely")
	}
}

func TestBasicShortCircuitsEvenWhenCheckerPanics(t *testing.T) {
	checker := &fakeChecker{panics: true}
	rr := serve(t, newGuard(checker, mapKV{}), domain.PlanBasic, guardUser)
	if rr.Code != http.StatusOK {
		t.Fatalf("basic must be granted without a store read, got %d", rr.Code)
	}
	if checker.syncs != 0 && checker.checks != 0 {
		t.Fatal("basic must not consult the checker")
	}
}

func TestGrantedPassesThrough(t *testing.T) {
	checker := &fakeChecker{allow: map[domain.Plan]bool{domain.PlanAdvanced: true}}
	rr := serve(t, newGuard(checker, mapKV{}), domain.PlanAdvanced, guardUser)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rr.Code)
	}
	if checker.syncs != 1 {
		t.Fatalf("guard must sync before checking, syncs=%d", checker.syncs)
	}
}

func TestDeniedRedirectsToConfiguredTarget(t *testing.T) {
	checker := &fakeChecker{}
	g := newGuard(checker, mapKV{})
	g.Denied = "/buy-now"
	rr := serve(t, g, domain.PlanIntermediate, guardUser)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/buy-now" {
		t.Fatalf("expected redirect to /buy-now, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestPanicFallsBackToCachePolicy(t *testing.T) {
	checker := &fakeChecker{panics: true}
	kv := mapKV{"advanced_access_abc": "true"}
	rr := serve(t, newGuard(checker, kv), domain.PlanAdvanced, guardUser)
	if rr.Code != http.StatusOK {
		t.Fatalf("cached grant must survive a panicking checker, got %d", rr.Code)
	}
}

func TestPanicWithEmptyCacheDenies(t *testing.T) {
	checker := &fakeChecker{panics: true}
	rr := serve(t, newGuard(checker, mapKV{}), domain.PlanAdvanced, guardUser)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/pricing" {
		t.Fatalf("expected fail-closed redirect, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestAliasPlanUsesCanonicalDecision(t *testing.T) {
	checker := &fakeChecker{allow: map[domain.Plan]bool{domain.PlanStylesTones: true}}
	rr := serve(t, newGuard(checker, mapKV{}), domain.PlanIndianStyles, guardUser)
	if rr.Code != http.StatusOK {
		t.Fatalf("indian-styles guard must accept styles-tones grant, got %d", rr.Code)
	}
}
