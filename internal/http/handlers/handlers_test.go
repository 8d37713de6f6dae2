package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/middleware"
	razorpay "github.com/abhi-28-key/abhimusickeys-server/internal/payments/razorpay"
)

type grantCall struct {
	uid  string
	plan domain.Plan
}

type fakeAccess struct {
	granted   map[domain.Plan]bool
	plans     []domain.Plan
	sub       *domain.Subscription
	syncCalls int
	grants    []grantCall
	grantErr  error
}

func (f *fakeAccess) HasPlanAccess(_ context.Context, user *domain.User, plan domain.Plan) bool {
	if user == nil {
		return !plan.Paid()
	}
	if !plan.Paid() {
		return true
	}
	return f.granted[plan.Canonical()]
}

func (f *fakeAccess) GrantedPlans(context.Context, *domain.User) []domain.Plan { return f.plans }

func (f *fakeAccess) Subscription(context.Context, *domain.User) *domain.Subscription { return f.sub }

func (f *fakeAccess) Sync(context.Context, *domain.User) { f.syncCalls++ }

func (f *fakeAccess) Grant(_ context.Context, uid string, plan domain.Plan, _ *domain.Subscription) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.grants = append(f.grants, grantCall{uid: uid, plan: plan})
	if f.granted == nil {
		f.granted = map[domain.Plan]bool{}
	}
	f.granted[plan.Canonical()] = true
	return nil
}

type fakeGateway struct {
	order     *razorpay.Order
	createErr error
	verifyErr error
	created   int
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ map[string]string) (*razorpay.Order, error) {
	f.created++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.order != nil {
		return f.order, nil
	}
	return &razorpay.Order{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (f *fakeGateway) VerifyPaymentSignature(string, string, string) error { return f.verifyErr }

type fakePurchases struct {
	orders      map[string]*domain.PurchaseOrder
	createErr   error
	markPaidErr error
	paid        []string
}

func (f *fakePurchases) CreateOrder(_ context.Context, o *domain.PurchaseOrder) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.orders == nil {
		f.orders = map[string]*domain.PurchaseOrder{}
	}
	f.orders[o.OrderID] = o
	return nil
}

func (f *fakePurchases) GetOrder(_ context.Context, orderID string) (*domain.PurchaseOrder, error) {
	if o, ok := f.orders[orderID]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePurchases) MarkPaid(_ context.Context, orderID, _ string) error {
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	f.paid = append(f.paid, orderID)
	return nil
}

type fakeDownloads struct {
	files     []domain.DownloadFile
	listErr   error
	insertIDs []string
}

func (f *fakeDownloads) List(_ context.Context, category string) ([]domain.DownloadFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if category == "" {
		return f.files, nil
	}
	var out []domain.DownloadFile
	for _, file := range f.files {
		if file.Category == category {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeDownloads) GetByID(_ context.Context, id string) (*domain.DownloadFile, error) {
	for i := range f.files {
		if f.files[i].ID == id {
			return &f.files[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDownloads) GetByKey(_ context.Context, key string) (*domain.DownloadFile, error) {
	for i := range f.files {
		if f.files[i].StorageKey == key {
			return &f.files[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDownloads) Insert(_ context.Context, file *domain.DownloadFile) (string, error) {
	id := "dl_new"
	file.ID = id
	f.files = append(f.files, *file)
	f.insertIDs = append(f.insertIDs, id)
	return id, nil
}

type fakeKV struct{ data map[string]string }

func (f *fakeKV) Get(key string) string { return f.data[key] }

func (f *fakeKV) SetIfUnset(key, value string) {
	if f.data == nil {
		f.data = map[string]string{}
	}
	if _, ok := f.data[key]; !ok {
		f.data[key] = value
	}
}

func (f *fakeKV) Set(key, value string) {
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[key] = value
}

func newTestApp() (*App, *fakeAccess, *fakeGateway, *fakePurchases, *fakeDownloads, *fakeKV) {
	access := &fakeAccess{}
	gateway := &fakeGateway{}
	purchases := &fakePurchases{}
	downloads := &fakeDownloads{}
	kv := &fakeKV{}
	app := &App{
		Logger:          zerolog.Nop(),
		Access:          access,
		Cache:           kv,
		Gateway:         gateway,
		Purchases:       purchases,
		Downloads:       downloads,
		RazorpayKeyID:   "rzp_test_key",
		DownloadBaseURL: "http://localhost:8080/files",
		DeniedRedirect:  "/pricing",
		AdminEmails:     []string{"admin@abhimusickeys.com"},
	}
	return app, access, gateway, purchases, downloads, kv
}

func withUser(r *http.Request, uid, email string) *http.Request {
	ctx := middleware.ContextWithUser(r.Context(), &domain.User{UID: uid, Email: email})
	return r.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rr.Body.String())
	}
	return body
}
