package entitlement

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

// Service resolves, syncs and grants purchase entitlements. The remote store
// is authoritative; the device cache can only widen access, never narrow it.
type Service struct {
	store  domain.EntitlementStore
	cache  KV
	logger zerolog.Logger
}

// NewService wires the resolver against a store and a device cache.
func NewService(store domain.EntitlementStore, cache KV, logger zerolog.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

// HasPlanAccess decides whether user may access plan.
//
// Anonymous visitors get nothing, not even basic; the route guard decides
// basic for signed-in users before ever calling here. For paid plans the
// store is consulted first; when it answers, a cached flag may still upgrade
// a store denial to granted (the store can be stale right after a purchase
// completed on another surface). When the store is unreachable or the user
// has no document, the cache is the only signal. Every failure is swallowed
// and logged: callers see granted or denied, never "could not tell", and the
// default is denied.
func (s *Service) HasPlanAccess(ctx context.Context, user *domain.User, plan domain.Plan) bool {
	if user == nil || user.UID == "" {
		return false
	}
	if !plan.Paid() {
		return true
	}

	rec, err := s.store.Get(ctx, user.UID)
	switch {
	case err == nil:
		if rec.Grants(plan) {
			return true
		}
		return CachedGrant(s.cache, user.UID, plan)
	case errors.Is(err, domain.ErrNotFound):
		return CachedGrant(s.cache, user.UID, plan)
	default:
		s.logger.Warn().Err(err).Str("uid", user.UID).Str("plan", string(plan)).
			Msg("entitlement store unreachable, falling back to device cache")
		return CachedGrant(s.cache, user.UID, plan)
	}
}

// GrantedPlans returns the canonical set of paid plans the user holds,
// merging store and cache the same way HasPlanAccess does. Used by the
// account/status surface.
func (s *Service) GrantedPlans(ctx context.Context, user *domain.User) []domain.Plan {
	if user == nil || user.UID == "" {
		return nil
	}
	var plans []domain.Plan
	for _, p := range []domain.Plan{domain.PlanIntermediate, domain.PlanAdvanced, domain.PlanStylesTones} {
		if s.HasPlanAccess(ctx, user, p) {
			plans = append(plans, p)
		}
	}
	return plans
}

// Subscription returns the stored subscription object when the store is
// reachable. Informational only; expiry is displayed, not enforced.
func (s *Service) Subscription(ctx context.Context, user *domain.User) *domain.Subscription {
	if user == nil || user.UID == "" {
		return nil
	}
	rec, err := s.store.Get(ctx, user.UID)
	if err != nil {
		return nil
	}
	return rec.Subscription
}
