package pricing

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

// Price is an amount in the smallest unit of its currency (paise, cents).
type Price struct {
	Amount   int64
	Currency string
}

// PlanInfo is one sellable tier as shown on the pricing page.
type PlanInfo struct {
	Plan        domain.Plan
	Title       string
	Description string
	Prices      map[string]int64 // currency code -> smallest unit
}

var catalog = []PlanInfo{
	{
		Plan:        domain.PlanIntermediate,
		Title:       "Intermediate Course",
		Description: "Chords, scales and ragas with lesson PDFs.",
		Prices:      map[string]int64{"INR": 49900, "USD": 999},
	},
	{
		Plan:        domain.PlanAdvanced,
		Title:       "Advanced Course",
		Description: "Full advanced curriculum, includes the intermediate course.",
		Prices:      map[string]int64{"INR": 79900, "USD": 1499},
	},
	{
		Plan:        domain.PlanStylesTones,
		Title:       "Indian Styles & Tones",
		Description: "PSR style packs and tone banks for Indian songs.",
		Prices:      map[string]int64{"INR": 29900, "USD": 599},
	},
}

// Plans returns the sellable tiers, in display order.
func Plans() []PlanInfo {
	out := make([]PlanInfo, len(catalog))
	copy(out, catalog)
	return out
}

// PriceFor returns the checkout price of a plan in the given currency.
func PriceFor(plan domain.Plan, currencyCode string) (Price, error) {
	for _, info := range catalog {
		if info.Plan == plan.Canonical() {
			if amount, ok := info.Prices[currencyCode]; ok {
				return Price{Amount: amount, Currency: currencyCode}, nil
			}
			return Price{}, fmt.Errorf("pricing: no %s price for plan %s", currencyCode, plan)
		}
	}
	return Price{}, fmt.Errorf("pricing: plan %s is not sellable", plan)
}

// Format renders a price for display, e.g. "₹ 499.00" or "$ 9.99".
func Format(p Price) string {
	unit, err := currency.ParseISO(p.Currency)
	if err != nil {
		return fmt.Sprintf("%s %.2f", p.Currency, float64(p.Amount)/100)
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(float64(p.Amount)/100)))
}
