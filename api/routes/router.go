package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbmartins/cargalog-backend/api/controllers"
	"github.com/vbmartins/cargalog-backend/api/middleware"
	"github.com/vbmartins/cargalog-backend/internal/auth"
	"github.com/vbmartins/cargalog-backend/internal/catalog"
	"github.com/vbmartins/cargalog-backend/internal/commission"
	"github.com/vbmartins/cargalog-backend/internal/drivers"
	"github.com/vbmartins/cargalog-backend/internal/loads"
	"github.com/vbmartins/cargalog-backend/internal/pricing"
	"github.com/vbmartins/cargalog-backend/internal/reports"
	"github.com/vbmartins/cargalog-backend/pkg/config"
	"github.com/vbmartins/cargalog-backend/pkg/db"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
	"github.com/vbmartins/cargalog-backend/pkg/metrics"
	"github.com/vbmartins/cargalog-backend/pkg/redis"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	AuthService       auth.Service
	DriversService    drivers.Service
	CatalogService    catalog.Service
	PricingService    pricing.Service
	CommissionService commission.Service
	LoadsService      loads.Service
	ReportsService    reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	checkers := []controllers.ReadinessChecker{deps.DB}
	if deps.Redis != nil {
		checkers = append(checkers, deps.Redis)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checkers...))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		login := controllers.AuthLogin(deps.AuthService, logg)
		if deps.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/loads", func(r chi.Router) {
			r.Get("/", controllers.ListLoads(deps.LoadsService, logg))
			r.Post("/", controllers.CreateLoad(deps.LoadsService, logg))
			r.Get("/{id}", controllers.GetLoad(deps.LoadsService, logg))
			r.Patch("/{id}/finalize", controllers.FinalizeLoad(deps.LoadsService, logg))
		})

		r.Get("/drivers", controllers.ListDrivers(deps.DriversService, logg))
		r.Get("/producer-types", controllers.ListProducerTypes(deps.CatalogService, logg))
		r.Get("/producers", controllers.ListProducers(deps.CatalogService, logg))
		r.Get("/factories", controllers.ListFactories(deps.CatalogService, logg))
		r.Get("/feed-types", controllers.ListFeedTypes(deps.CatalogService, logg))
		r.Get("/commission/current", controllers.CurrentCommission(deps.CommissionService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Post("/drivers", controllers.CreateDriver(deps.DriversService, logg))
			r.Post("/producer-types", controllers.CreateProducerType(deps.CatalogService, logg))
			r.Post("/producers", controllers.CreateProducer(deps.CatalogService, logg))
			r.Post("/factories", controllers.CreateFactory(deps.CatalogService, logg))
			r.Post("/feed-types", controllers.CreateFeedType(deps.CatalogService, logg))

			r.Route("/prices", func(r chi.Router) {
				r.Get("/", controllers.ListPriceRules(deps.PricingService, logg))
				r.Post("/", controllers.CreatePriceRule(deps.PricingService, logg))
				r.Patch("/{id}/close", controllers.ClosePriceRule(deps.PricingService, logg))
			})

			r.Route("/commission", func(r chi.Router) {
				r.Get("/history", controllers.CommissionHistory(deps.CommissionService, logg))
				r.Post("/", controllers.ApplyCommission(deps.CommissionService, logg))
			})

			r.Get("/dashboard", controllers.Dashboard(deps.ReportsService, logg))
			r.Get("/reports/conference", controllers.ConferenceReport(deps.ReportsService, logg))
		})
	})

	return r
}
