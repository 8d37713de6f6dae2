package domain

import (
	"fmt"
	"strings"
)

// Plan enumerates the purchasable course tiers.
type Plan string

const (
	PlanBasic        Plan = "basic"
	PlanIntermediate Plan = "intermediate"
	PlanAdvanced     Plan = "advanced"
	PlanStylesTones  Plan = "styles-tones"
	// PlanIndianStyles is the historical name of the styles-tones tier. Old
	// clients and old store documents still use it, so it stays parseable.
	PlanIndianStyles Plan = "indian-styles"
)

// ParsePlan normalizes a plan identifier coming from a URL or payload.
func ParsePlan(s string) (Plan, error) {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanBasic:
		return PlanBasic, nil
	case PlanIntermediate:
		return PlanIntermediate, nil
	case PlanAdvanced:
		return PlanAdvanced, nil
	case PlanStylesTones, PlanIndianStyles:
		return PlanStylesTones, nil
	}
	return "", fmt.Errorf("unknown plan %q", s)
}

// Canonical collapses historical aliases onto the tier they sell.
func (p Plan) Canonical() Plan {
	if p == PlanIndianStyles {
		return PlanStylesTones
	}
	return p
}

// Paid reports whether the plan requires a purchase. Basic is free for any
// signed-in user and is never persisted.
func (p Plan) Paid() bool {
	return p.Canonical() != PlanBasic && p != ""
}

// Implied returns the plans a purchase of p also grants. Buying advanced
// includes the intermediate course; the grant is written explicitly at
// purchase time rather than derived at check time.
func (p Plan) Implied() []Plan {
	if p.Canonical() == PlanAdvanced {
		return []Plan{PlanIntermediate}
	}
	return nil
}
