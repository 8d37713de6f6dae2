package domain

import "time"

// Subscription carries display metadata about the most recent purchase.
// ExpiresAt is stored and shown to the user but never enforced by access
// checks; the product currently sells lifetime access.
type Subscription struct {
	Plan      Plan       `json:"plan"`
	Status    string     `json:"status"`
	GrantedAt time.Time  `json:"grantedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Active reports whether the subscription is marked active.
func (s *Subscription) Active() bool {
	return s != nil && s.Status == "active"
}

// PurchaseStatus is the nested per-plan mirror inside the entitlement
// document. It duplicates the top-level flags; both generations of field
// names are kept because the schema is additive-only.
type PurchaseStatus struct {
	Intermediate bool `json:"intermediate"`
	Advanced     bool `json:"advanced"`
	StylesTones  bool `json:"stylesTones"`
	IndianStyles bool `json:"indianStyles"`
}

// EntitlementRecord is the per-user purchase document held in the
// entitlement store. Several generations of client code wrote access flags
// under different names; all of them survive here and access is granted when
// ANY field for the requested tier is true. No single field is the source of
// truth.
type EntitlementRecord struct {
	UID string `json:"-"`

	IntermediateAccess bool `json:"intermediateAccess"`
	AdvancedAccess     bool `json:"advancedAccess"`

	// Three legacy spellings of "bought the styles & tones pack".
	HasPurchasedIndianStyles bool `json:"hasPurchasedIndianStyles"`
	HasStylesTonesAccess     bool `json:"hasStylesTonesAccess"`
	HasIndianStylesAccess    bool `json:"hasIndianStylesAccess"`

	PurchaseStatus PurchaseStatus `json:"purchaseStatus"`
	Subscription   *Subscription  `json:"subscription,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Grants reports whether the record grants access to the given plan,
// OR-combining every historical field name for that tier.
func (r *EntitlementRecord) Grants(plan Plan) bool {
	if r == nil {
		return false
	}
	switch plan.Canonical() {
	case PlanBasic:
		return true
	case PlanIntermediate:
		return r.IntermediateAccess || r.PurchaseStatus.Intermediate
	case PlanAdvanced:
		return r.AdvancedAccess || r.PurchaseStatus.Advanced
	case PlanStylesTones:
		return r.HasPurchasedIndianStyles ||
			r.HasStylesTonesAccess ||
			r.HasIndianStylesAccess ||
			r.PurchaseStatus.StylesTones ||
			r.PurchaseStatus.IndianStyles
	}
	return false
}

// GrantedPlans collapses the redundant flags into the canonical set of paid
// plans the record grants.
func (r *EntitlementRecord) GrantedPlans() []Plan {
	var plans []Plan
	for _, p := range []Plan{PlanIntermediate, PlanAdvanced, PlanStylesTones} {
		if r.Grants(p) {
			plans = append(plans, p)
		}
	}
	return plans
}

// GrantPatch returns the document fragment a purchase writes: only the true
// flags for the plan, so merging it into an existing document can never flip
// a grant back to false.
func GrantPatch(plan Plan, sub *Subscription) map[string]any {
	patch := map[string]any{}
	status := map[string]any{}
	switch plan.Canonical() {
	case PlanIntermediate:
		patch["intermediateAccess"] = true
		status["intermediate"] = true
	case PlanAdvanced:
		patch["advancedAccess"] = true
		status["advanced"] = true
	case PlanStylesTones:
		patch["hasPurchasedIndianStyles"] = true
		patch["hasStylesTonesAccess"] = true
		patch["hasIndianStylesAccess"] = true
		status["stylesTones"] = true
		status["indianStyles"] = true
	default:
		// basic is never persisted
		return nil
	}
	patch["purchaseStatus"] = status
	if sub != nil {
		patch["subscription"] = sub
	}
	return patch
}

// SetGranted flips every field spelling for the given plan to true. Flags
// are never flipped back to false; revocation has no remote path.
func (r *EntitlementRecord) SetGranted(plan Plan) {
	switch plan.Canonical() {
	case PlanIntermediate:
		r.IntermediateAccess = true
		r.PurchaseStatus.Intermediate = true
	case PlanAdvanced:
		r.AdvancedAccess = true
		r.PurchaseStatus.Advanced = true
	case PlanStylesTones:
		r.HasPurchasedIndianStyles = true
		r.HasStylesTonesAccess = true
		r.HasIndianStylesAccess = true
		r.PurchaseStatus.StylesTones = true
		r.PurchaseStatus.IndianStyles = true
	}
}
