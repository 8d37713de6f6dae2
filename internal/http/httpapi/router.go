package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/http/handlers"
	"github.com/abhi-28-key/abhimusickeys-server/internal/middleware"
)

// Deps groups everything the router wires beyond the handler container.
type Deps struct {
	App             *handlers.App
	Verifier        middleware.TokenVerifier
	Guard           *middleware.Guard
	Country         middleware.CountryLookup
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter assembles the full route tree. Auth is soft here: it attaches
// the verified user when a bearer token is present and lets handlers and
// the route guard decide what anonymous callers may do.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(d.App.Logger),
		middleware.CORS(d.AllowedOrigins),
	)
	if d.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(d.RateLimitPerMin, time.Minute))
	}
	r.Use(middleware.Auth(d.Verifier))
	r.Use(middleware.Currency("INR", d.Country))

	app := d.App

	r.Get("/v1/healthz", app.Health)
	r.Get("/api/pricing/plans", app.PricingPlans)

	r.Route("/api/me", func(r chi.Router) {
		r.Get("/plans", app.MePlans)
		r.Post("/sync", app.MeSync)
		r.Post("/enroll", app.MeEnroll)
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/create-order", app.PaymentsCreateOrder)
		r.Post("/verify", app.PaymentsVerify)
	})

	r.Route("/api/downloads", func(r chi.Router) {
		r.Get("/", app.DownloadsList)
		r.Get("/bundle", app.DownloadsBundle)
		r.Get("/{id}", app.DownloadsFetch)
	})

	// Course pages sit behind the plan guard; denied requests are redirected
	// to the pricing page instead of getting a bare 403.
	r.Route("/api/courses", func(r chi.Router) {
		r.With(d.Guard.RequirePlan(domain.PlanBasic)).
			Get("/basic", app.Course(domain.PlanBasic, "basic"))
		r.With(d.Guard.RequirePlan(domain.PlanIntermediate)).
			Get("/intermediate", app.Course(domain.PlanIntermediate, "intermediate"))
		r.With(d.Guard.RequirePlan(domain.PlanAdvanced)).
			Get("/advanced", app.Course(domain.PlanAdvanced, "advanced"))
		r.With(d.Guard.RequirePlan(domain.PlanStylesTones)).
			Get("/styles-tones", app.Course(domain.PlanStylesTones, "styles"))
	})

	r.Get("/files/*", app.FilesServe)

	r.Post("/api/admin/downloads", app.AdminDownloadsUpload)

	return r
}
