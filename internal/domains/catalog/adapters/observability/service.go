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
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/plant-nursery-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) List(ctx context.Context, input catalogports.ListInput) (*catalogports.ListResult, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(
		attribute.String("catalog.sort", string(input.Filter.Sort)),
	))
	defer span.End()
	if input.Page != nil {
		span.SetAttributes(attribute.Int("page.number", input.Page.Number), attribute.Int("page.limit", input.Page.Limit))
	}

	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list plants")
	}
	span.SetAttributes(attribute.Int("catalog.returned", len(result.Products)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.Int64("plant.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load plant", slog.Int64("plant.id", id))
	}
	return result, nil
}

func (s *Service) Categories(ctx context.Context) ([]catalogdomain.CategoryCount, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Categories")
	defer span.End()

	result, err := s.inner.Categories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to count categories")
	}
	span.SetAttributes(attribute.Int("catalog.categories", len(result)))
	return result, nil
}

func (s *Service) LowStock(ctx context.Context, threshold int) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.LowStock", trace.WithAttributes(attribute.Int("stock.threshold", threshold)))
	defer span.End()

	result, err := s.inner.LowStock(ctx, threshold)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list low stock plants", slog.Int("stock.threshold", threshold))
	}
	if len(result) > 0 {
		s.logInfo(ctx, "low stock plants found", slog.Int("count", len(result)), slog.Int("stock.threshold", threshold))
	}
	return result, nil
}

func (s *Service) AddProduct(ctx context.Context, input catalogports.AddProductInput) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddProduct", trace.WithAttributes(
		attribute.String("plant.name", input.Name),
		attribute.String("plant.category", input.Category),
	))
	defer span.End()

	s.logInfo(ctx, "adding plant", slog.String("plant.name", input.Name), slog.String("actor.id", input.ActorUserID))
	result, err := s.inner.AddProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add plant", slog.String("plant.name", input.Name))
	}
	s.metrics.recordAdded(ctx, result.Category)
	s.logInfo(ctx, "plant added", slog.Int64("plant.id", result.ID), slog.Int("plant.stock", result.Stock))
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
	plantsAdded metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	plantsAdded, _ := m.Int64Counter("catalog.service.plants_added", metric.WithDescription("Number of plants added by administrators"))
	return serviceMetrics{plantsAdded: plantsAdded}
}

func (m serviceMetrics) recordAdded(ctx context.Context, category string) {
	if m.plantsAdded != nil {
		m.plantsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("plant.category", category)))
	}
}

var _ catalogports.Service = (*Service)(nil)
