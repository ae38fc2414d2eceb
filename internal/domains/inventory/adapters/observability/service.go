package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
)

const tracerName = "github.com/Apurer/plant-nursery-api/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory ledger with tracing, logging, and metrics.
type Service struct {
	inner   inventoryports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core inventory service.
func New(inner inventoryports.Service, opts ...Option) inventoryports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.Default(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Apply(ctx context.Context, movement inventorydomain.Movement) (*catalogdomain.Product, *inventorydomain.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Apply", trace.WithAttributes(
		attribute.Int64("plant.id", movement.ProductID),
		attribute.String("inventory.type", string(movement.Type)),
		attribute.Int("inventory.quantity", movement.Quantity),
	))
	defer span.End()

	attrs := []slog.Attr{
		slog.Int64("plant.id", movement.ProductID),
		slog.String("inventory.type", string(movement.Type)),
		slog.Int("inventory.quantity", movement.Quantity),
	}
	s.logInfo(ctx, "applying stock movement", attrs...)
	product, tx, err := s.inner.Apply(ctx, movement)
	if err != nil {
		s.metrics.recordRejected(ctx, movement.Type)
		return nil, nil, s.handleError(ctx, span, err, "stock movement rejected", attrs...)
	}
	s.metrics.recordApplied(ctx, tx.Type)
	s.logInfo(ctx, "stock movement applied",
		slog.Int64("inventory.transaction_id", tx.ID),
		slog.Int("stock.previous", tx.PreviousStock),
		slog.Int("stock.new", tx.NewStock))
	return product, tx, nil
}

func (s *Service) History(ctx context.Context, productID int64) ([]*inventorydomain.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.History", trace.WithAttributes(attribute.Int64("plant.id", productID)))
	defer span.End()

	result, err := s.inner.History(ctx, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load stock history", slog.Int64("plant.id", productID))
	}
	span.SetAttributes(attribute.Int("inventory.transactions", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	applied  metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	applied, _ := m.Int64Counter("inventory.service.transactions", metric.WithDescription("Number of stock movements recorded"))
	rejected, _ := m.Int64Counter("inventory.service.rejections", metric.WithDescription("Number of stock movements refused"))
	return serviceMetrics{applied: applied, rejected: rejected}
}

func (m serviceMetrics) recordApplied(ctx context.Context, t inventorydomain.Type) {
	if m.applied != nil {
		m.applied.Add(ctx, 1, metric.WithAttributes(attribute.String("inventory.type", string(t))))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, t inventorydomain.Type) {
	if m.rejected != nil {
		m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("inventory.type", string(t))))
	}
}

var _ inventoryports.Service = (*Service)(nil)
