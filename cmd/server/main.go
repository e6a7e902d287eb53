package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/api"
	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/config"
	"github.com/furnshop/storefront/internal/events"
	"github.com/furnshop/storefront/internal/logger"
	"github.com/furnshop/storefront/internal/repository/postgres"
	"github.com/furnshop/storefront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, log)

	var store cart.Store
	if cfg.Redis.Enabled() {
		redisStore, err := cart.NewRedisStore(cart.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.SessionTTL,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
		log.Info("Cart sessions stored in Redis", zap.String("host", cfg.Redis.Host))
	} else {
		store = cart.NewMemoryStore()
		log.Warn("Redis not configured, cart sessions kept in memory")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQ.Enabled() {
		rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		publisher = rabbit
		log.Info("Publishing order events", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}
	defer publisher.Close()

	profiles := service.ProfilesFromConfig(cfg.Pricing)
	catalog := service.NewCatalogService(repos, log)
	svc := api.Services{
		Cart:    service.NewCartService(store, catalog, profiles, log),
		Orders:  service.NewOrderService(repos, publisher, service.OrderOptions{Summary: profiles.Summary, StrictTransitions: cfg.Orders.StrictTransitions}, log),
		Catalog: catalog,
	}

	router := api.NewRouter(cfg, repos, svc, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errCh:
		log.Error("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
