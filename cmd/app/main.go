package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlitvin/flightbooking/config"
	"github.com/mlitvin/flightbooking/internal/bootstrap"
	"github.com/mlitvin/flightbooking/internal/cache"
	"github.com/mlitvin/flightbooking/internal/kafka"
	"github.com/mlitvin/flightbooking/internal/ledger"
	"github.com/mlitvin/flightbooking/internal/repository"
	"github.com/mlitvin/flightbooking/internal/service/booking"
	"github.com/mlitvin/flightbooking/internal/service/flights"
	"github.com/mlitvin/flightbooking/internal/service/payments"
	"github.com/mlitvin/flightbooking/internal/store"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recordStore, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer cleanup()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(recordStore)
	bookingRepo := repository.NewBookingRepository(recordStore)
	paymentRepo := repository.NewPaymentRepository(recordStore)

	seatLedger := ledger.New(flightRepo)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		seatLedger,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithReleaseRetries(cfg.Booking.ReleaseRetries),
	)
	paymentService := payments.NewPaymentService(paymentRepo, producer, cfg.Kafka.PaymentsTopic)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, paymentService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newStore builds the record store: postgres when a database host is
// configured, otherwise the in-process backend.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Database.Host == "" {
		log.Printf("no database configured, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	pg := store.NewPGStore(pool)
	if err := pg.Init(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pg, pool.Close, nil
}
