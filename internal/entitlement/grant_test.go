package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

func TestGrantAdvancedCrossGrantsIntermediate(t *testing.T) {
	store := &fakeStore{}
	kv := newFakeKV()
	svc := newTestService(store, kv)

	if err := svc.Grant(context.Background(), "abc", domain.PlanAdvanced, nil); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	for _, p := range []domain.Plan{domain.PlanAdvanced, domain.PlanIntermediate} {
		if !svc.HasPlanAccess(context.Background(), testUser, p) {
			t.Fatalf("%s must resolve true after advanced purchase", p)
		}
	}
	if kv.data["advanced_access_abc"] != "true" || kv.data["intermediate_access_abc"] != "true" {
		t.Fatalf("cache mirror missing after grant: %#v", kv.data)
	}
}

func TestGrantAdvancedStillResolvesWhenStoreGoesOffline(t *testing.T) {
	store := &fakeStore{}
	kv := newFakeKV()
	svc := newTestService(store, kv)

	if err := svc.Grant(context.Background(), "abc", domain.PlanAdvanced, nil); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	store.err = errors.New("offline")
	if !svc.HasPlanAccess(context.Background(), testUser, domain.PlanAdvanced) {
		t.Fatal("grant mirror must keep resolving while the store is down")
	}
	if !svc.HasPlanAccess(context.Background(), testUser, domain.PlanIntermediate) {
		t.Fatal("cross-grant mirror must keep resolving while the store is down")
	}
}

func TestGrantStylesAlias(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, newFakeKV())

	if err := svc.Grant(context.Background(), "abc", domain.PlanIndianStyles, nil); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}
	if !svc.HasPlanAccess(context.Background(), testUser, domain.PlanStylesTones) {
		t.Fatal("indian-styles purchase must grant the styles-tones tier")
	}
	if svc.HasPlanAccess(context.Background(), testUser, domain.PlanIntermediate) {
		t.Fatal("styles purchase must not grant intermediate")
	}
}

func TestGrantStoreFailureSurfaces(t *testing.T) {
	store := &fakeStore{err: errors.New("write refused")}
	kv := newFakeKV()
	svc := newTestService(store, kv)

	if err := svc.Grant(context.Background(), "abc", domain.PlanAdvanced, nil); err == nil {
		t.Fatal("store write failure must surface, payment flow fails closed")
	}
	if len(kv.data) != 0 {
		t.Fatalf("no cache mirror on failed grant: %#v", kv.data)
	}
}

func TestGrantBasicIsNoOp(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, newFakeKV())
	if err := svc.Grant(context.Background(), "abc", domain.PlanBasic, nil); err != nil {
		t.Fatalf("Grant(basic) returned error: %v", err)
	}
	if len(store.grants) != 0 {
		t.Fatalf("basic must never be persisted, got %v", store.grants)
	}
}

func TestGrantDefaultsSubscription(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, newFakeKV())
	if err := svc.Grant(context.Background(), "abc", domain.PlanStylesTones, nil); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}
	rec := store.records["abc"]
	if rec.Subscription == nil || rec.Subscription.Plan != domain.PlanStylesTones || !rec.Subscription.Active() {
		t.Fatalf("expected default active subscription, got %+v", rec.Subscription)
	}
}
