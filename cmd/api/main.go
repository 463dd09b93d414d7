package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/vibeoutfit-backend/api/routes"
	"github.com/angelmondragon/vibeoutfit-backend/internal/admin"
	"github.com/angelmondragon/vibeoutfit-backend/internal/auth"
	"github.com/angelmondragon/vibeoutfit-backend/internal/cart"
	"github.com/angelmondragon/vibeoutfit-backend/internal/catalog"
	"github.com/angelmondragon/vibeoutfit-backend/internal/checkout"
	"github.com/angelmondragon/vibeoutfit-backend/internal/navigation"
	"github.com/angelmondragon/vibeoutfit-backend/internal/orders"
	"github.com/angelmondragon/vibeoutfit-backend/internal/reviews"
	"github.com/angelmondragon/vibeoutfit-backend/internal/users"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/auth/session"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/config"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/lock"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/logger"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/metrics"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/migrate"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	defer func() {
		closeErr := multierr.Combine(dbClient.Close(), redisClient.Close())
		if closeErr != nil {
			logg.Error(context.Background(), "error closing resources", closeErr)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	conn := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(conn),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	requireResource(ctx, logg, "auth service", err)

	navigationService, err := navigation.NewService(navigation.NewRepository(conn))
	requireResource(ctx, logg, "navigation service", err)

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	requireResource(ctx, logg, "catalog service", err)

	reviewService, err := reviews.NewService(reviews.NewRepository(conn))
	requireResource(ctx, logg, "review service", err)

	cartRepo := cart.NewRepository(conn)
	cartService, err := cart.NewService(cartRepo, dbClient)
	requireResource(ctx, logg, "cart service", err)

	ordersRepo := orders.NewRepository(conn)
	ordersService, err := orders.NewService(ordersRepo)
	requireResource(ctx, logg, "orders service", err)

	locker, err := lock.NewRedisLocker(redisClient, cfg.Checkout.LockTTL)
	requireResource(ctx, logg, "checkout locker", err)

	checkoutService, err := checkout.NewService(
		dbClient,
		cartRepo,
		ordersRepo,
		checkout.NewStockRepository(conn),
		locker,
		redisClient,
		checkoutMetrics,
		logg,
	)
	requireResource(ctx, logg, "checkout service", err)

	adminService, err := admin.NewService(conn)
	requireResource(ctx, logg, "admin service", err)

	router := routes.NewRouter(cfg, logg, routes.Dependencies{
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: httpMetrics,
		Auth:        authService,
		Navigation:  navigationService,
		Catalog:     catalogService,
		Reviews:     reviewService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Orders:      ordersService,
		Admin:       adminService,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.Handle("/", router)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
