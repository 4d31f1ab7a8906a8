// launching the server, storage and broker consumers
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/notification-service/config"
	"github.com/ds124wfegd/notification-service/internal/consumer"
	"github.com/ds124wfegd/notification-service/internal/database"
	"github.com/ds124wfegd/notification-service/internal/kafka"
	"github.com/ds124wfegd/notification-service/internal/rabbitMQ"
	"github.com/ds124wfegd/notification-service/internal/service"
	"github.com/ds124wfegd/notification-service/internal/transport"
	"github.com/ds124wfegd/notification-service/pkg/postgres"
	"github.com/ds124wfegd/notification-service/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type closeFunc func()

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := transport.HealthChecks{}

	repo, closeRepo, err := newRepository(ctx, cfg, checks)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %s", err.Error())
	}
	defer closeRepo()
	logrus.WithField("driver", cfg.Storage.Driver).Info("Storage initialized")

	svc := service.NewService(repo)

	handler := consumer.NewSendNotificationHandler(svc.Send)
	closeBroker, err := startBroker(ctx, cfg, handler.Handle, checks)
	if err != nil {
		logrus.Fatalf("Failed to start broker consumer: %s", err.Error())
	}
	defer closeBroker()

	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(svc, cfg.Server.RequestTimeout, checks)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// newRepository opens the configured store and registers its health check.
func newRepository(ctx context.Context, cfg *config.Config, checks transport.HealthChecks) (database.NotificationsRepository, closeFunc, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return database.NewInMemoryRepository(), func() {}, nil

	case config.StorageRedis:
		client, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return database.NewRedisRepository(client), func() { client.Close() }, nil

	case config.StoragePostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		checks["postgres"] = db.PingContext
		return database.NewPostgresRepository(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func startBroker(ctx context.Context, cfg *config.Config, handler consumer.Handler, checks transport.HealthChecks) (closeFunc, error) {
	switch cfg.Broker.Driver {
	case config.BrokerNone, "":
		logrus.Warn("Broker consumer disabled, notifications are only created over HTTP")
		return func() {}, nil

	case config.BrokerKafka:
		c := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}, handler)

		go func() {
			if err := c.Run(ctx); err != nil {
				logrus.Errorf("Kafka consumer error: %v", err)
			}
		}()
		logrus.WithField("topic", cfg.Kafka.Topic).Info("Kafka consumer started")

		return func() {
			if err := c.Close(); err != nil {
				logrus.Errorf("Failed to close Kafka consumer: %v", err)
			}
		}, nil

	case config.BrokerRabbitMQ:
		queue, err := rabbitMQ.NewRabbitMQ(rabbitMQ.RabbitMQConfig{
			URL:           cfg.Rabbit.AMQPURL(),
			QueueName:     cfg.Rabbit.QueueName,
			PrefetchCount: cfg.Rabbit.PrefetchCount,
		})
		if err != nil {
			return nil, err
		}

		if err := queue.Consume(ctx, handler); err != nil {
			queue.Close()
			return nil, err
		}
		checks["rabbitmq"] = func(context.Context) error { return queue.HealthCheck() }
		logrus.WithField("queue", cfg.Rabbit.QueueName).Info("RabbitMQ consumer started")

		return func() {
			if err := queue.Close(); err != nil {
				logrus.Errorf("Failed to close RabbitMQ: %v", err)
			}
		}, nil

	default:
		return nil, fmt.Errorf("unknown broker driver %q", cfg.Broker.Driver)
	}
}
