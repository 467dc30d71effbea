package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vbmartins/cargalog-backend/api/routes"
	"github.com/vbmartins/cargalog-backend/internal/auth"
	"github.com/vbmartins/cargalog-backend/internal/catalog"
	"github.com/vbmartins/cargalog-backend/internal/commission"
	"github.com/vbmartins/cargalog-backend/internal/drivers"
	"github.com/vbmartins/cargalog-backend/internal/loads"
	"github.com/vbmartins/cargalog-backend/internal/pricing"
	"github.com/vbmartins/cargalog-backend/internal/reports"
	"github.com/vbmartins/cargalog-backend/pkg/config"
	"github.com/vbmartins/cargalog-backend/pkg/db"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
	"github.com/vbmartins/cargalog-backend/pkg/metrics"
	"github.com/vbmartins/cargalog-backend/pkg/migrate"
	"github.com/vbmartins/cargalog-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	conn := dbClient.DB()

	pricingService, err := pricing.NewService(pricing.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	commissionService, err := commission.NewService(commission.NewRepository(conn), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create commission service", err)
		os.Exit(1)
	}

	loadsService, err := loads.NewService(loads.NewRepository(conn), dbClient, pricingService, commissionService)
	if err != nil {
		logg.Error(context.Background(), "failed to create loads service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	driversService, err := drivers.NewService(drivers.NewRepository(conn), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create drivers service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.NewRepository(conn), cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:            cfg,
			Logger:            logg,
			DB:                dbClient,
			Redis:             redisClient,
			HTTPMetrics:       httpMetrics,
			AuthService:       authService,
			DriversService:    driversService,
			CatalogService:    catalogService,
			PricingService:    pricingService,
			CommissionService: commissionService,
			LoadsService:      loadsService,
			ReportsService:    reportsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
