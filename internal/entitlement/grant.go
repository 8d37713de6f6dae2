package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

// Grant records a completed purchase: the plan's flags are merged into the
// store document and mirrored into the device cache right away, so the next
// check passes even before the store read catches up.
//
// Buying advanced explicitly grants intermediate as well. The cross-grant is
// written here, once, rather than derived at check time; the read-side OR
// policy knows nothing about plan hierarchy.
func (s *Service) Grant(ctx context.Context, uid string, plan domain.Plan, sub *domain.Subscription) error {
	if uid == "" {
		return fmt.Errorf("grant: uid is required")
	}
	plan = plan.Canonical()
	if !plan.Paid() {
		return nil
	}
	if sub == nil {
		sub = &domain.Subscription{Plan: plan, Status: "active", GrantedAt: time.Now().UTC()}
	}

	if err := s.store.GrantPlan(ctx, uid, plan, sub); err != nil {
		return fmt.Errorf("grant %s to %s: %w", plan, uid, err)
	}
	for _, implied := range plan.Implied() {
		if err := s.store.GrantPlan(ctx, uid, implied, nil); err != nil {
			return fmt.Errorf("grant implied %s to %s: %w", implied, uid, err)
		}
	}

	if s.cache != nil {
		rec := &domain.EntitlementRecord{UID: uid, Subscription: sub}
		rec.SetGranted(plan)
		for _, implied := range plan.Implied() {
			rec.SetGranted(implied)
		}
		s.mirror(rec)
	}
	return nil
}
