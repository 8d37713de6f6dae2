package handlers

import (
	"net/http"

	"github.com/abhi-28-key/abhimusickeys-server/internal/middleware"
	"github.com/abhi-28-key/abhimusickeys-server/internal/pricing"
)

type planPricing struct {
	Plan        string `json:"plan"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Display     string `json:"display"`
	Owned       bool   `json:"owned"`
}

// PricingPlans lists the sellable tiers priced in the request's negotiated
// currency, with an owned flag when the caller is signed in.
func (a *App) PricingPlans(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	code := middleware.CurrencyFromContext(r.Context())
	plans := make([]planPricing, 0, 3)
	for _, info := range pricing.Plans() {
		price, err := pricing.PriceFor(info.Plan, code)
		if err != nil {
			a.Logger.Error().Err(err).Str("plan", string(info.Plan)).Msg("pricing: missing price")
			continue
		}
		plans = append(plans, planPricing{
			Plan:        string(info.Plan),
			Title:       info.Title,
			Description: info.Description,
			Amount:      price.Amount,
			Currency:    price.Currency,
			Display:     pricing.Format(price),
			Owned:       user != nil && a.Access.HasPlanAccess(r.Context(), user, info.Plan),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"currency": code, "plans": plans})
}
