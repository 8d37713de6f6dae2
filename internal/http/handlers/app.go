package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/middleware"
	razorpay "github.com/abhi-28-key/abhimusickeys-server/internal/payments/razorpay"
	"github.com/abhi-28-key/abhimusickeys-server/internal/storage"
)

// AccessService is the slice of the entitlement service handlers need.
type AccessService interface {
	HasPlanAccess(ctx context.Context, user *domain.User, plan domain.Plan) bool
	GrantedPlans(ctx context.Context, user *domain.User) []domain.Plan
	Subscription(ctx context.Context, user *domain.User) *domain.Subscription
	Sync(ctx context.Context, user *domain.User)
	Grant(ctx context.Context, uid string, plan domain.Plan, sub *domain.Subscription) error
}

// PaymentGateway is the slice of the Razorpay client handlers need.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*razorpay.Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) error
}

// KV mirrors entitlement.KV for the enrollment hints.
type KV interface {
	Get(key string) string
	SetIfUnset(key, value string)
	Set(key, value string)
}

// App is the handler container wired once in cmd/api.
type App struct {
	Logger zerolog.Logger

	Access    AccessService
	Cache     KV
	Gateway   PaymentGateway
	Purchases domain.PurchaseRepository
	Downloads domain.DownloadRepository
	Files     *storage.FileStore

	RazorpayKeyID   string
	DownloadBaseURL string
	DeniedRedirect  string
	AdminEmails     []string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

func (a *App) currentUser(r *http.Request) *domain.User {
	return middleware.UserFromContext(r.Context())
}

func (a *App) isAdmin(user *domain.User) bool {
	if user == nil || user.Email == "" {
		return false
	}
	for _, email := range a.AdminEmails {
		if strings.EqualFold(email, user.Email) {
			return true
		}
	}
	return false
}
