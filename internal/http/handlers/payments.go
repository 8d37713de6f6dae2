package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/middleware"
	"github.com/abhi-28-key/abhimusickeys-server/internal/pricing"
)

type createOrderRequest struct {
	Plan string `json:"plan"`
}

// PaymentsCreateOrder opens a gateway order for a plan purchase. The amount
// comes from the server-side catalog in the negotiated currency; the client
// never blindly picks its own price.
func (a *App) PaymentsCreateOrder(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	plan, err := domain.ParsePlan(req.Plan)
	if err != nil || !plan.Paid() {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown or free plan")
		return
	}
	if a.Access.HasPlanAccess(r.Context(), user, plan) {
		a.error(w, http.StatusConflict, "already_purchased", "you already own this plan")
		return
	}

	currencyCode := middleware.CurrencyFromContext(r.Context())
	price, err := pricing.PriceFor(plan, currencyCode)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "plan is not sellable in "+currencyCode)
		return
	}

	receipt := "amk-" + uuid.NewString()
	order, err := a.Gateway.CreateOrder(r.Context(), price.Amount, price.Currency, receipt, map[string]string{
		"plan": string(plan),
		"uid":  user.UID,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("uid", user.UID).Str("plan", string(plan)).Msg("create order failed")
		a.error(w, http.StatusBadGateway, "gateway", "could not start checkout, please try again")
		return
	}

	po := &domain.PurchaseOrder{
		OrderID:  order.ID,
		Receipt:  receipt,
		UID:      user.UID,
		Plan:     plan,
		Amount:   price.Amount,
		Currency: price.Currency,
		Status:   domain.OrderCreated,
	}
	if err := a.Purchases.CreateOrder(r.Context(), po); err != nil {
		a.Logger.Error().Err(err).Str("order_id", order.ID).Msg("record order failed")
		a.error(w, http.StatusInternalServerError, "internal", "could not record checkout")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"order_id": order.ID,
		"amount":   price.Amount,
		"currency": price.Currency,
		"key_id":   a.RazorpayKeyID,
		"display":  pricing.Format(price),
	})
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// PaymentsVerify is the payment-success flow: check the checkout signature,
// then flip the entitlement flags in the store and mirror them to the device
// cache. Verification failure leaves every flag untouched and tells the
// user to contact support; there is no automatic retry and no partial
// grant. Buying advanced also grants intermediate here, explicitly.
func (a *App) PaymentsVerify(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	if err := a.Gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		a.Logger.Warn().Err(err).Str("uid", user.UID).Str("order_id", req.OrderID).Msg("payment verification failed")
		a.error(w, http.StatusBadRequest, "verification_failed",
			"payment could not be verified; if you were charged, contact support")
		return
	}

	order, err := a.Purchases.GetOrder(r.Context(), req.OrderID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "unknown order")
		return
	}
	if order.UID != user.UID {
		a.error(w, http.StatusForbidden, "forbidden", "order belongs to another account")
		return
	}

	if err := a.Purchases.MarkPaid(r.Context(), order.OrderID, req.PaymentID); err != nil {
		if errors.Is(err, domain.ErrDuplicateOperation) {
			// Verified twice (page reload): the grant already happened,
			// answer success without re-granting.
			a.json(w, http.StatusOK, a.verifyResponse(r, user))
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "could not record payment")
		return
	}

	now := time.Now().UTC()
	sub := &domain.Subscription{Plan: order.Plan.Canonical(), Status: "active", GrantedAt: now}
	if err := a.Access.Grant(r.Context(), user.UID, order.Plan, sub); err != nil {
		a.Logger.Error().Err(err).Str("uid", user.UID).Str("plan", string(order.Plan)).Msg("grant after payment failed")
		a.error(w, http.StatusInternalServerError, "internal",
			"payment received but access could not be activated; contact support")
		return
	}

	a.json(w, http.StatusOK, a.verifyResponse(r, user))
}

func (a *App) verifyResponse(r *http.Request, user *domain.User) map[string]any {
	plans := a.Access.GrantedPlans(r.Context(), user)
	if plans == nil {
		plans = []domain.Plan{}
	}
	return map[string]any{"status": "paid", "plans": plans}
}
