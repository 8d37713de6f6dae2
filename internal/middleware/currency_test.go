package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func currencyProbe(t *testing.T, lookup CountryLookup, mutate func(*http.Request)) string {
	t.Helper()
	var got string
	handler := Currency("INR", lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CurrencyFromContext(r.Context())
	}))
	req := httptest.NewRequest("GET", "/pricing", nil)
	req.RemoteAddr = "203.0.113.9:4321"
	if mutate != nil {
		mutate(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestCurrencyHeaderOverrideWins(t *testing.T) {
	got := currencyProbe(t, func(ip string) (string, error) { return "IN", nil }, func(r *http.Request) {
		r.Header.Set("X-Currency", "usd")
	})
	if got != "USD" {
		t.Fatalf("header override must win, got %q", got)
	}
}

func TestCurrencyIndianVisitorGetsINR(t *testing.T) {
	got := currencyProbe(t, func(ip string) (string, error) { return "IN", nil }, nil)
	if got != "INR" {
		t.Fatalf("expected INR for IN, got %q", got)
	}
}

func TestCurrencyForeignVisitorGetsUSD(t *testing.T) {
	got := currencyProbe(t, func(ip string) (string, error) { return "DE", nil }, nil)
	if got != "USD" {
		t.Fatalf("expected USD for DE, got %q", got)
	}
}

func TestCurrencyLookupFailureUsesDefault(t *testing.T) {
	got := currencyProbe(t, func(ip string) (string, error) { return "", errors.New("no db") }, nil)
	if got != "INR" {
		t.Fatalf("expected default INR, got %q", got)
	}
}

func TestCurrencyNoLookupUsesDefault(t *testing.T) {
	if got := currencyProbe(t, nil, nil); got != "INR" {
		t.Fatalf("expected default INR, got %q", got)
	}
}

func TestCurrencyCountryHeaderShortCircuitsLookup(t *testing.T) {
	got := currencyProbe(t, func(ip string) (string, error) { return "DE", nil }, func(r *http.Request) {
		r.Header.Set("X-Country", "in")
	})
	if got != "INR" {
		t.Fatalf("X-Country header must win over lookup, got %q", got)
	}
}
