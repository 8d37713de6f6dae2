package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/entitlement"
)

// AccessChecker is the slice of the entitlement service the guard uses.
type AccessChecker interface {
	Sync(ctx context.Context, user *domain.User)
	HasPlanAccess(ctx context.Context, user *domain.User, plan domain.Plan) bool
}

// GuardState is the explicit check state for a protected request.
type GuardState int

const (
	StateChecking GuardState = iota
	StateGranted
	StateDenied
)

// Guard gates protected routes on a plan. Instead of ad-hoc booleans the
// decision is a small state machine: CHECKING, then GRANTED or DENIED, with
// a separate no-user edge that skips the check entirely and redirects to
// login.
type Guard struct {
	Checker AccessChecker
	Cache   entitlement.KV
	Login   string // redirect target for anonymous requests
	Denied  string // redirect target for unentitled requests, e.g. /pricing
	Logger  zerolog.Logger
}

// RequirePlan returns middleware enforcing the given plan.
func (g *Guard) RequirePlan(plan domain.Plan) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				http.Redirect(w, r, g.Login, http.StatusSeeOther)
				return
			}
			switch g.decide(r.Context(), user, plan) {
			case StateGranted:
				next.ServeHTTP(w, r)
			default:
				http.Redirect(w, r, g.Denied, http.StatusSeeOther)
			}
		})
	}
}

// decide runs the CHECKING state to completion for a signed-in user.
// Basic content never touches the entitlement store: any signed-in user is
// granted immediately, so a dead store cannot lock free users out. A panic
// anywhere in the check degrades to the shared cache-only policy rather
// than a blank error page; the cache can only widen access, so the degraded
// path is at worst too permissive for a user who had a grant cached.
func (g *Guard) decide(ctx context.Context, user *domain.User, plan domain.Plan) (state GuardState) {
	state = StateChecking

	if !plan.Paid() {
		return StateGranted
	}

	defer func() {
		if rec := recover(); rec != nil {
			g.Logger.Error().Interface("panic", rec).Str("uid", user.UID).
				Msg("access check panicked, using cache-only policy")
			if entitlement.CachedGrant(g.Cache, user.UID, plan) {
				state = StateGranted
			} else {
				state = StateDenied
			}
		}
	}()

	g.Checker.Sync(ctx, user)
	if g.Checker.HasPlanAccess(ctx, user, plan) {
		return StateGranted
	}
	return StateDenied
}
