// Package service implements the partnership lifecycle: interest, join
// requests, admission under a capacity limit, group status changes with their
// member cascade, and group provisioning when an opening is approved.
//
// Every mutating operation runs inside one StoreTx. Notifications are
// collected during the transaction and handed to the Notifier only after it
// commits; a notification failure never changes an operation's result.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"buyeralike/internal/partnership/metrics"
)

const (
	tracerName                 = "buyeralike/internal/partnership/service"
	defaultGroupCapacity       = 5
	operationExpressInterest   = "express_interest"
	operationRequestJoinGroup  = "request_join_group"
	operationDecideJoinRequest = "decide_join_request"
	operationWithdraw          = "withdraw"
	operationLeave             = "leave"
	operationCreateGroup       = "create_group"
	operationSetStatus         = "set_status"
	operationOnOpeningApproved = "on_opening_approved"
)

// Service orchestrates partnership and group lifecycles.
type Service struct {
	partnerships         PartnershipStore
	groups               GroupStore
	openings             OpeningReader
	notifier             Notifier
	tx                   StoreTx
	logger               *slog.Logger
	metrics              *metrics.Metrics
	tracer               trace.Tracer
	defaultGroupCapacity int
}

type serviceConfig struct {
	notifier             Notifier
	tx                   StoreTx
	logger               *slog.Logger
	metrics              *metrics.Metrics
	tracer               trace.Tracer
	defaultGroupCapacity int
	txTimeout            time.Duration
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *serviceConfig) {
		c.notifier = n
	}
}

// WithTx sets the transaction runner. Without it the service uses an
// in-memory runner that serialises transactions and rolls back store
// snapshots on error.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}

// WithTxTimeout bounds in-memory transactions that carry no deadline.
func WithTxTimeout(d time.Duration) Option {
	return func(c *serviceConfig) {
		c.txTimeout = d
	}
}

// WithDefaultGroupCapacity sets max members for groups the orchestrator
// provisions. Zero or less means unlimited.
func WithDefaultGroupCapacity(n int) Option {
	return func(c *serviceConfig) {
		c.defaultGroupCapacity = n
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}

func New(partnerships PartnershipStore, groups GroupStore, openings OpeningReader, opts ...Option) *Service {
	cfg := &serviceConfig{defaultGroupCapacity: defaultGroupCapacity}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}
	tx := cfg.tx
	if tx == nil {
		tx = newInMemoryStoreTx(cfg.txTimeout, partnerships, groups)
	}
	return &Service{
		partnerships:         partnerships,
		groups:               groups,
		openings:             openings,
		notifier:             cfg.notifier,
		tx:                   tx,
		logger:               cfg.logger,
		metrics:              cfg.metrics,
		tracer:               cfg.tracer,
		defaultGroupCapacity: cfg.defaultGroupCapacity,
	}
}

// observe starts a span for operation and returns a finish func that records
// err on the span and the operation duration.
func (s *Service) observe(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "partnership."+operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.ObserveOperation(operation, start)
	}
}

// logTransition records a successful lifecycle transition.
func (s *Service) logTransition(ctx context.Context, operation string, attributes ...any) {
	args := append(attributes, "operation", operation, "log_type", "lifecycle")
	s.logger.InfoContext(ctx, "partnership transition", args...)
}
