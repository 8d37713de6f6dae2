package entitlement

import "github.com/abhi-28-key/abhimusickeys-server/internal/domain"

// KV is the device-local cache surface this package needs. Implemented by
// cache.Local; tests substitute a map-backed fake.
type KV interface {
	Get(key string) string
	SetIfUnset(key, value string)
	Set(key, value string)
}

// FlagValue is the only value ever written for an access flag. Absence of a
// key means "not granted"; "false" is never stored.
const FlagValue = "true"

// FlagKeys returns every device-cache key whose value "true" grants plan for
// uid. The styles tier has two spellings for the same reason the store
// document has three: old clients wrote old names, and grants are an OR
// across all of them.
func FlagKeys(plan domain.Plan, uid string) []string {
	switch plan.Canonical() {
	case domain.PlanIntermediate:
		return []string{"intermediate_access_" + uid}
	case domain.PlanAdvanced:
		return []string{"advanced_access_" + uid}
	case domain.PlanStylesTones:
		return []string{
			"styles_tones_access_" + uid,
			"indian_styles_access_" + uid,
		}
	}
	return nil
}

// SubscriptionKey is where Sync mirrors the subscription object verbatim.
func SubscriptionKey(uid string) string {
	return "subscription_" + uid
}

// EnrollKey marks that a user opened a course. It is a resume hint for the
// UI and is deliberately excluded from every access decision: enrollment is
// not proof of purchase.
func EnrollKey(uid, course string) string {
	return "enrolled_" + uid + "_" + course
}

// CachedGrant reports whether the device cache grants plan for uid. This is
// the single cache-side policy function; the resolver fallback and the route
// guard's recovery path both call it instead of re-deriving the OR logic.
//
// A cached flag can only upgrade a decision to granted. A cache miss is
// never evidence of denial; callers must treat it as "no additional grant".
func CachedGrant(kv KV, uid string, plan domain.Plan) bool {
	if uid == "" || kv == nil {
		return false
	}
	if !plan.Paid() {
		return true
	}
	for _, key := range FlagKeys(plan, uid) {
		if kv.Get(key) == FlagValue {
			return true
		}
	}
	return false
}
