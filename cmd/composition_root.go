package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/backend"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/s3"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived adapters and builds everything else from them.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	metrics    *metrics.Metrics
	locker     *commands.OrderLocker

	backend   *backend.Client
	publisher *kafka.Publisher
	archive   *s3.InvoiceArchive
}

// NewCompositionRoot connects the outbound adapters. Kafka and S3 are
// optional and stay disabled when KAFKA_HOST or S3_BUCKET is empty.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		metrics:    metrics.New(),
		locker:     commands.NewOrderLocker(),
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
	}, c.metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("order store client: %w", err)
	}
	c.backend = client

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.Config{
			Brokers: brokers,
			Topic:   cfg.KafkaOrderChangedTopic,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		c.publisher = publisher
	} else {
		logger.Warn("KAFKA_HOST is not set, order events will not be published")
	}

	if cfg.S3Bucket != "" {
		archive, err := s3.NewInvoiceArchive(ctx, s3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("invoice archive: %w", err)
		}
		c.archive = archive
	}

	return c, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) handlerDeps() commands.HandlerDeps {
	deps := commands.HandlerDeps{
		Backend:       c.backend,
		UoWFactory:    c.createUoWFactory(),
		Locker:        c.locker,
		Metrics:       c.metrics,
		Logger:        c.logger,
		ActionTimeout: c.cfg.ActionTimeout,
	}
	if c.publisher != nil {
		deps.Publisher = c.publisher
	}
	return deps
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateOrderStateMachine() (*commands.OrderStateMachine, error) {
	verifier, err := services.NewDeliveryVerifier(c.cfg.OTPMaxAttempts, c.cfg.OTPLockoutWindow)
	if err != nil {
		return nil, err
	}

	var archive ports.InvoiceArchive
	if c.archive != nil {
		archive = c.archive
	}
	return commands.NewOrderStateMachine(c.handlerDeps(), verifier, archive), nil
}

func (c *CompositionRoot) CreatePurgeExpiredRecordsCommandHandler() commands.PurgeExpiredRecordsCommandHandler {
	return commands.NewPurgeExpiredRecordsCommandHandler(c.handlerDeps())
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.backend)
}

func (c *CompositionRoot) CreateGetDispatchPlanQueryHandler() queries.GetDispatchPlanQueryHandler {
	return queries.NewGetDispatchPlanQueryHandler(c.backend)
}

func (c *CompositionRoot) CreateGetOrderActionHistoryQueryHandler() queries.GetOrderActionHistoryQueryHandler {
	return queries.NewGetOrderActionHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreatePurgeExpiredRecordsCommandHandler()
	return jobs.NewJobManager(&handler, c.cfg.LedgerRetention, c.cfg.LedgerRetentionSchedule, c.logger)
}

// CreateHTTPHandler builds the echo router with every route.
func (c *CompositionRoot) CreateHTTPHandler() (http.Handler, error) {
	stateMachine, err := c.CreateOrderStateMachine()
	if err != nil {
		return nil, err
	}

	auth, err := httpin.NewAuthenticator(c.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		stateMachine,
		c.CreateGetOrderSummaryQueryHandler(),
		c.CreateGetDispatchPlanQueryHandler(),
		c.CreateGetOrderActionHistoryQueryHandler(),
	)
	return httpin.NewRouter(server, auth, c.metrics.Handler(), c.logger), nil
}

// Close releases the adapters that hold connections.
func (c *CompositionRoot) Close() error {
	var problems []error
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			problems = append(problems, fmt.Errorf("close kafka publisher: %w", err))
		}
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			problems = append(problems, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(problems...)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
