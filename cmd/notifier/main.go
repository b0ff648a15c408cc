package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/example/bala-store/internal/config"
	"github.com/example/bala-store/internal/email"
	"github.com/example/bala-store/internal/events"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
	"github.com/example/bala-store/internal/notify"
	"github.com/example/bala-store/internal/repository"
)

// Dedicated consumer group so mail delivery tracks its own offset.
const consumerGroup = "email-notifier"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("bala-store-notifier", true)
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	logging.Init("bala-store-notifier", cfg.IsDevelopment())
	logging.SetLevel(cfg.LogLevel)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal().Msg("KAFKA_BROKERS is required for the notifier")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("could not open store backend")
	}
	defer cleanup()

	users := repository.NewUsers(ctx, store)
	emailService := email.NewService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	handler := notify.NewHandler(emailService, users)

	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, consumerGroup)
	defer consumer.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Str("group", consumerGroup).
			Msg("notifier started")
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()
	<-done
}

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
		return nil, noop, nil
	}
}
