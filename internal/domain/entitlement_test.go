package domain

import "testing"

func TestGrantsStylesTonesAnyLegacyField(t *testing.T) {
	tests := []struct {
		name   string
		record EntitlementRecord
	}{
		{
			name:   "hasPurchasedIndianStyles only",
			record: EntitlementRecord{HasPurchasedIndianStyles: true},
		},
		{
			name:   "hasStylesTonesAccess only",
			record: EntitlementRecord{HasStylesTonesAccess: true},
		},
		{
			name:   "hasIndianStylesAccess only",
			record: EntitlementRecord{HasIndianStylesAccess: true},
		},
		{
			name:   "purchaseStatus.stylesTones only",
			record: EntitlementRecord{PurchaseStatus: PurchaseStatus{StylesTones: true}},
		},
		{
			name:   "purchaseStatus.indianStyles only",
			record: EntitlementRecord{PurchaseStatus: PurchaseStatus{IndianStyles: true}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.record.Grants(PlanStylesTones) {
				t.Fatalf("expected styles-tones granted by %s", tc.name)
			}
			if !tc.record.Grants(PlanIndianStyles) {
				t.Fatalf("expected indian-styles alias granted by %s", tc.name)
			}
			if tc.record.Grants(PlanAdvanced) {
				t.Fatalf("styles flag must not grant advanced")
			}
		})
	}
}

func TestGrantsPerTierFields(t *testing.T) {
	tests := []struct {
		name   string
		record EntitlementRecord
		plan   Plan
		want   bool
	}{
		{"intermediate top-level", EntitlementRecord{IntermediateAccess: true}, PlanIntermediate, true},
		{"intermediate mirror", EntitlementRecord{PurchaseStatus: PurchaseStatus{Intermediate: true}}, PlanIntermediate, true},
		{"advanced top-level", EntitlementRecord{AdvancedAccess: true}, PlanAdvanced, true},
		{"advanced mirror", EntitlementRecord{PurchaseStatus: PurchaseStatus{Advanced: true}}, PlanAdvanced, true},
		{"empty record denies intermediate", EntitlementRecord{}, PlanIntermediate, false},
		{"empty record denies advanced", EntitlementRecord{}, PlanAdvanced, false},
		{"empty record denies styles", EntitlementRecord{}, PlanStylesTones, false},
		{"any record grants basic", EntitlementRecord{}, PlanBasic, true},
		{"advanced does not imply intermediate at read time", EntitlementRecord{AdvancedAccess: true}, PlanIntermediate, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.Grants(tc.plan); got != tc.want {
				t.Fatalf("Grants(%s) = %v, want %v", tc.plan, got, tc.want)
			}
		})
	}
}

func TestNilRecordGrantsNothing(t *testing.T) {
	var r *EntitlementRecord
	for _, p := range []Plan{PlanBasic, PlanIntermediate, PlanAdvanced, PlanStylesTones} {
		if r.Grants(p) {
			t.Fatalf("nil record granted %s", p)
		}
	}
}

func TestSetGrantedFlipsEverySpelling(t *testing.T) {
	var r EntitlementRecord
	r.SetGranted(PlanIndianStyles)

	if !r.HasPurchasedIndianStyles || !r.HasStylesTonesAccess || !r.HasIndianStylesAccess {
		t.Fatalf("legacy styles fields not all set: %+v", r)
	}
	if !r.PurchaseStatus.StylesTones || !r.PurchaseStatus.IndianStyles {
		t.Fatalf("purchaseStatus mirror not set: %+v", r.PurchaseStatus)
	}
	if r.IntermediateAccess || r.AdvancedAccess {
		t.Fatalf("unrelated tiers must stay false")
	}
}

func TestGrantedPlansCollapsesToCanonicalSet(t *testing.T) {
	r := EntitlementRecord{
		AdvancedAccess:        true,
		HasIndianStylesAccess: true,
		PurchaseStatus:        PurchaseStatus{StylesTones: true},
	}
	got := r.GrantedPlans()
	want := []Plan{PlanAdvanced, PlanStylesTones}
	if len(got) != len(want) {
		t.Fatalf("GrantedPlans = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GrantedPlans = %v, want %v", got, want)
		}
	}
}
