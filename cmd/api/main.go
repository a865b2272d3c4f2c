package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Terellreed1/smokers-club-sub000/api/routes"
	"github.com/Terellreed1/smokers-club-sub000/internal/adminauth"
	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	"github.com/Terellreed1/smokers-club-sub000/internal/checkout"
	"github.com/Terellreed1/smokers-club-sub000/internal/faq"
	"github.com/Terellreed1/smokers-club-sub000/internal/maintenance"
	"github.com/Terellreed1/smokers-club-sub000/internal/products"
	"github.com/Terellreed1/smokers-club-sub000/internal/referrals"
	"github.com/Terellreed1/smokers-club-sub000/internal/reviews"
	"github.com/Terellreed1/smokers-club-sub000/internal/wholesale"
	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	"github.com/Terellreed1/smokers-club-sub000/pkg/db"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/mail"
	"github.com/Terellreed1/smokers-club-sub000/pkg/metrics"
	"github.com/Terellreed1/smokers-club-sub000/pkg/migrate"
	"github.com/Terellreed1/smokers-club-sub000/pkg/redis"
	"github.com/Terellreed1/smokers-club-sub000/pkg/square"
)

const (
	shutdownTimeout     = 15 * time.Second
	maintenanceInterval = 5 * time.Minute
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	squareClient, err := square.NewClient(ctx, cfg.Square, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap square client", err)
		os.Exit(1)
	}

	var mailClient *mail.Client
	if cfg.Sendgrid.APIKey != "" {
		mailClient, err = mail.NewClient(cfg.Sendgrid, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap sendgrid client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "sendgrid api key not set, wholesale notifications disabled")
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)
	cartMetrics := metrics.NewCartMetrics(promRegistry)
	jobMetrics := metrics.NewJobMetrics(promRegistry)

	registry := cart.NewRegistry(cfg.Session.TTL, logg, cartMetrics)

	adminAuthService, err := adminauth.NewService(adminauth.NewRepo(dbClient.DB()), cfg.AdminAuth)
	if err != nil {
		logg.Error(ctx, "failed to create admin auth service", err)
		os.Exit(1)
	}

	if err := startMaintenance(ctx, logg, redisClient, jobMetrics, adminAuthService, registry); err != nil {
		logg.Error(ctx, "failed to start maintenance runner", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(squareClient, registry, cfg.Checkout, logg, cartMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create review service", err)
		os.Exit(1)
	}

	faqService, err := faq.NewService(faq.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create faq service", err)
		os.Exit(1)
	}

	referralService, err := referrals.NewService(referrals.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create referral service", err)
		os.Exit(1)
	}

	wholesaleService, err := newWholesaleService(dbClient, mailClient, cfg.Sendgrid.WholesaleInbox, logg)
	if err != nil {
		logg.Error(ctx, "failed to create wholesale service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Registry:        registry,
			HTTPMetrics:     httpMetrics,
			MetricsRegistry: promRegistry,
			AdminAuth:       adminAuthService,
			Products:        productService,
			Checkout:        checkoutService,
			Reviews:         reviewService,
			FAQ:             faqService,
			Referrals:       referralService,
			Wholesale:       wholesaleService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
		}
	}
}

// newWholesaleService keeps a missing mail client as a true nil interface;
// passing a typed-nil *mail.Client would sail past the service's nil check.
func newWholesaleService(dbClient *db.Client, mailClient *mail.Client, inbox string, logg *logger.Logger) (*wholesale.Service, error) {
	repo := wholesale.NewRepository(dbClient.DB())
	if mailClient == nil {
		return wholesale.NewService(repo, nil, inbox, logg)
	}
	return wholesale.NewService(repo, mailClient, inbox, logg)
}

// startMaintenance wires the housekeeping jobs and runs them in the
// background until the server shuts down.
func startMaintenance(
	ctx context.Context,
	logg *logger.Logger,
	redisClient *redis.Client,
	jobMetrics *metrics.JobMetrics,
	adminAuthService *adminauth.Service,
	registry *cart.Registry,
) error {
	purgeJob, err := maintenance.NewSessionPurgeJob(adminAuthService, logg)
	if err != nil {
		return err
	}
	sweepJob, err := maintenance.NewCartSweepJob(registry, logg)
	if err != nil {
		return err
	}
	lock, err := maintenance.NewRedisLock(redisClient, redisClient.Key("maintenance", "lock"), maintenanceInterval)
	if err != nil {
		return err
	}
	runner, err := maintenance.NewRunner(maintenance.RunnerParams{
		Logger:   logg,
		Registry: maintenance.NewRegistry(purgeJob, sweepJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: maintenanceInterval,
	})
	if err != nil {
		return err
	}

	go func() {
		if err := runner.Run(ctx); err != nil && err != context.Canceled {
			logg.Error(ctx, "maintenance runner stopped", err)
		}
	}()
	return nil
}
