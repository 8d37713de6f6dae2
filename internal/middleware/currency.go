package middleware

import (
	"context"
	"net/http"
	"strings"
)

type currencyContextKey struct{}
type countryContextKey struct{}

var (
	CurrencyKey = currencyContextKey{}
	CountryKey  = countryContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// Currency decides the display currency for the request: an explicit
// X-Currency header wins, otherwise GeoIP country (Indian visitors pay in
// INR), otherwise the default.
func Currency(defaultCurrency string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := resolveCountry(r, lookup)
			currency := detectCurrency(r, defaultCurrency, country)
			ctx := context.WithValue(r.Context(), CurrencyKey, currency)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, strings.ToUpper(country))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectCurrency(r *http.Request, fallback, country string) string {
	if v := normalizeCurrency(r.Header.Get("X-Currency")); v != "" {
		return v
	}
	if strings.EqualFold(country, "IN") {
		return "INR"
	}
	if country != "" {
		return "USD"
	}
	if fallback != "" {
		return strings.ToUpper(fallback)
	}
	return "INR"
}

func normalizeCurrency(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "INR":
		return "INR"
	case "USD":
		return "USD"
	}
	return ""
}

func resolveCountry(r *http.Request, lookup CountryLookup) string {
	if v := r.Header.Get("X-Country"); v != "" {
		return strings.ToUpper(strings.TrimSpace(v))
	}
	if lookup == nil {
		return ""
	}
	country, err := lookup(clientIPForRateLimit(r))
	if err != nil {
		return ""
	}
	return country
}

// CurrencyFromContext returns the negotiated currency code, defaulting to INR.
func CurrencyFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CurrencyKey).(string); ok && v != "" {
		return v
	}
	return "INR"
}
