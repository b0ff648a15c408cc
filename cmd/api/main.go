package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/bala-store/internal/api"
	"github.com/example/bala-store/internal/auth"
	"github.com/example/bala-store/internal/backup"
	"github.com/example/bala-store/internal/bootstrap"
	"github.com/example/bala-store/internal/cart"
	"github.com/example/bala-store/internal/checkout"
	"github.com/example/bala-store/internal/config"
	"github.com/example/bala-store/internal/events"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
	"github.com/example/bala-store/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("bala-store", true)
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	logging.Init("bala-store", cfg.IsDevelopment())
	logging.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("could not open store backend")
	}
	defer cleanup()
	log.Info().Str("backend", cfg.Store.Backend).Msg("store backend ready")

	if err := bootstrap.Initialize(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("first-run seeding failed")
	}

	products := repository.NewProducts(ctx, store)
	categories := repository.NewCategories(ctx, store)
	orders := repository.NewOrders(ctx, store)
	users := repository.NewUsers(ctx, store)
	settings := repository.NewSettings(ctx, store)
	cartEngine := cart.NewEngine(ctx, store)

	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("order event stream enabled")
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	authService := auth.NewService(users, jwtService, auth.NewSessionCache(), cfg.Auth.Latency)
	checkoutService := checkout.NewService(orders, cartEngine, publisher)
	bridge := backup.NewBridge(store, products, categories, orders, users, settings, cartEngine)

	handlers := &api.Handlers{
		Auth:     api.NewAuthHandlers(authService),
		Catalog:  api.NewCatalogHandlers(products, categories),
		Cart:     api.NewCartHandlers(cartEngine, products),
		Orders:   api.NewOrderHandlers(checkoutService, orders, settings, cfg.StoreName),
		Settings: api.NewSettingsHandlers(settings),
		Backup:   api.NewBackupHandlers(bridge),
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewRouter(handlers, jwtService, authService),
		ReadTimeout:  cfg.HTTP.TimeoutRead,
		WriteTimeout: cfg.HTTP.TimeoutWrite,
		IdleTimeout:  cfg.HTTP.TimeoutIdle,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("store", cfg.StoreName).Msg("server started")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown did not finish cleanly")
	}
}

// openStore builds the configured persistence backend. The returned cleanup
// closes any underlying connection.
func openStore(cfg *config.Config) (kvstore.Store, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case "memory":
		return kvstore.NewMemory(), noop, nil
	case "file":
		store, err := kvstore.NewFile(cfg.Store.DataDir, cfg.Store.QuotaBytes)
		return store, noop, err
	case "postgres":
		store, err := kvstore.OpenPostgres(cfg.Store.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		store, err := kvstore.OpenRedis(cfg.Store.RedisAddr, cfg.Store.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		// config.Load already validated the backend name.
		return nil, noop, nil
	}
}
