package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/entitlement"
)

// knownCourses are the course slugs the UI offers a "continue where you
// left off" shortcut for.
var knownCourses = []string{"basic", "intermediate", "advanced", "styles-tones"}

// MePlans is the account/status surface: the canonical set of granted
// plans, the stored subscription (expiry included, displayed but not
// enforced), and the enrollment resume hints.
func (a *App) MePlans(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	plans := a.Access.GrantedPlans(r.Context(), user)
	if plans == nil {
		plans = []domain.Plan{}
	}

	var enrolled []string
	for _, course := range knownCourses {
		if a.Cache.Get(entitlement.EnrollKey(user.UID, course)) == entitlement.FlagValue {
			enrolled = append(enrolled, course)
		}
	}

	a.json(w, http.StatusOK, map[string]any{
		"uid":          user.UID,
		"email":        user.Email,
		"plans":        plans,
		"subscription": a.Access.Subscription(r.Context(), user),
		"enrolled":     enrolled,
	})
}

// MeSync exposes the entitlement sync as a fire-and-forget endpoint the
// client calls after sign-in.
func (a *App) MeSync(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}
	a.Access.Sync(r.Context(), user)
	a.json(w, http.StatusAccepted, map[string]string{"status": "synced"})
}

type enrollRequest struct {
	Course string `json:"course"`
}

// MeEnroll records that the user opened a course. Purely a resume hint:
// nothing in the access path ever reads these flags.
func (a *App) MeEnroll(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Course == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "course required")
		return
	}
	known := false
	for _, course := range knownCourses {
		if course == req.Course {
			known = true
			break
		}
	}
	if !known {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown course")
		return
	}
	a.Cache.SetIfUnset(entitlement.EnrollKey(user.UID, req.Course), entitlement.FlagValue)
	a.json(w, http.StatusOK, map[string]string{"status": "enrolled"})
}
