package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"buyeralike/internal/notification"
	"buyeralike/internal/notification/sink"
	openingconsumer "buyeralike/internal/opening/consumer"
	openingstore "buyeralike/internal/opening/store"
	"buyeralike/internal/partnership/metrics"
	"buyeralike/internal/partnership/service"
	groupstore "buyeralike/internal/partnership/store/group"
	partnershipstore "buyeralike/internal/partnership/store/partnership"
	"buyeralike/internal/platform/config"
	"buyeralike/internal/platform/httpserver"
	kafkaconsumer "buyeralike/internal/platform/kafka/consumer"
	kafkaproducer "buyeralike/internal/platform/kafka/producer"
	"buyeralike/internal/platform/logger"
	"buyeralike/internal/platform/postgres"
	"buyeralike/internal/platform/redis"
)

const (
	shutdownTimeout           = 10 * time.Second
	notificationTopicParts    = 3
	notificationTopicReplicas = 1
)

// openingStore is the read model both the consumer and the service use.
type openingStore interface {
	openingconsumer.OpeningStore
	service.OpeningReader
}

// stores groups the persistence backends selected at startup.
type stores struct {
	partnerships service.PartnershipStore
	groups       service.GroupStore
	openings     openingStore
	tx           service.StoreTx
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run wires dependencies and blocks until SIGINT or SIGTERM, or until one
// of the background components fails.
func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httpserver.HealthCheck{}

	st, closeStores, err := openStores(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeStores()

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = rdb.Health
	}

	var producer *kafkaproducer.Producer
	if cfg.Kafka.Enabled() {
		producer, err = kafkaproducer.New(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer producer.Close()
		checks["kafka"] = producer.Health
	}

	deliverTo, err := notificationSink(ctx, cfg, log, producer, rdb)
	if err != nil {
		return err
	}
	publisher := notification.NewPublisher(deliverTo,
		notification.WithLogger(log),
		notification.WithMetrics(notification.NewMetrics()),
		notification.WithBufferSize(cfg.Notification.BufferSize),
		notification.WithBreaker(cfg.Notification.BreakerThreshold, cfg.Notification.BreakerCooldown),
	)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithNotifier(publisher),
		service.WithDefaultGroupCapacity(cfg.Partnership.DefaultGroupCapacity),
		service.WithTxTimeout(cfg.Partnership.TxTimeout),
	}
	if st.tx != nil {
		opts = append(opts, service.WithTx(st.tx))
	}
	partnerships := service.New(st.partnerships, st.groups, st.openings, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return publisher.Run(gctx)
	})

	if cfg.Kafka.Enabled() {
		consumer, err := kafkaconsumer.New(kafkaconsumer.Config{
			Brokers: cfg.Kafka.Brokers,
			Group:   cfg.Kafka.ConsumerGroup,
			Topics:  []string{cfg.Kafka.OpeningEventsTopic},
		}, openingconsumer.NewHandler(st.openings, partnerships, log), log)
		if err != nil {
			return err
		}
		defer consumer.Close()
		g.Go(func() error {
			return consumer.Run(gctx)
		})
		log.Info("consuming opening events", "topic", cfg.Kafka.OpeningEventsTopic, "group", cfg.Kafka.ConsumerGroup)
	} else {
		log.Warn("KAFKA_BROKERS not set, opening events will not be consumed")
	}

	srv := httpserver.New(cfg.Server.Addr, httpserver.NewOpsRouter(prometheus.DefaultGatherer, checks))
	g.Go(func() error {
		log.Info("starting ops server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStores selects Postgres when DATABASE_URL is set and in-memory stores
// otherwise.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger, checks map[string]httpserver.HealthCheck) (*stores, func(), error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return &stores{
			partnerships: partnershipstore.NewInMemory(),
			groups:       groupstore.NewInMemory(),
			openings:     openingstore.NewInMemory(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("database migrations applied")
	}
	checks["postgres"] = db.PingContext

	return &stores{
		partnerships: partnershipstore.NewPostgres(db),
		groups:       groupstore.NewPostgres(db),
		openings:     openingstore.NewPostgres(db),
		tx:           postgres.NewTx(db, cfg.Partnership.TxTimeout),
	}, func() { _ = db.Close() }, nil
}

func notificationSink(ctx context.Context, cfg config.Config, log *slog.Logger, producer *kafkaproducer.Producer, rdb *redis.Client) (notification.Sink, error) {
	switch cfg.Notification.Sink {
	case config.SinkKafka:
		if producer == nil {
			return nil, errors.New("NOTIFICATION_SINK=kafka requires KAFKA_BROKERS")
		}
		topic := cfg.Kafka.NotificationsTopic
		if err := producer.EnsureTopic(ctx, topic, notificationTopicParts, notificationTopicReplicas); err != nil {
			return nil, err
		}
		log.Info("notifications publish to kafka", "topic", topic)
		return sink.NewKafka(producer, topic), nil
	case config.SinkRedis:
		if rdb == nil {
			return nil, errors.New("NOTIFICATION_SINK=redis requires REDIS_URL")
		}
		log.Info("notifications append to redis stream", "stream", cfg.Notification.Stream)
		return sink.NewRedisStream(rdb, cfg.Notification.Stream, cfg.Notification.StreamMaxLen), nil
	case config.SinkLog, "":
		return sink.NewLog(log), nil
	default:
		return nil, fmt.Errorf("unknown notification sink %q", cfg.Notification.Sink)
	}
}
