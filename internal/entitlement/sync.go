package entitlement

import (
	"context"
	"encoding/json"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

// Sync copies any remote grants into the device cache so later checks keep
// working offline. One-way and monotonic: flags are written as "true" when
// unset and never deleted or downgraded; the reverse direction (cache to
// store) does not exist. Idempotent, safe to call on every protected
// request. A store failure makes it a logged no-op.
func (s *Service) Sync(ctx context.Context, user *domain.User) {
	if user == nil || user.UID == "" || s.cache == nil {
		return
	}
	rec, err := s.store.Get(ctx, user.UID)
	if err != nil {
		s.logger.Debug().Err(err).Str("uid", user.UID).Msg("entitlement sync skipped")
		return
	}
	s.mirror(rec)
}

func (s *Service) mirror(rec *domain.EntitlementRecord) {
	for _, plan := range rec.GrantedPlans() {
		for _, key := range FlagKeys(plan, rec.UID) {
			s.cache.SetIfUnset(key, FlagValue)
		}
	}
	if rec.Subscription != nil {
		if raw, err := json.Marshal(rec.Subscription); err == nil {
			s.cache.Set(SubscriptionKey(rec.UID), string(raw))
		}
	}
}
