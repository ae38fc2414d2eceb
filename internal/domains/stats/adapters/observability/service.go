package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	statsdomain "github.com/Apurer/plant-nursery-api/internal/domains/stats/domain"
	statsports "github.com/Apurer/plant-nursery-api/internal/domains/stats/ports"
)

const tracerName = "github.com/Apurer/plant-nursery-api/internal/domains/stats/adapters/observability/service"

type Service struct {
	inner  statsports.Service
	tracer trace.Tracer
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

// New wraps the dashboard service.
func New(inner statsports.Service, opts ...Option) statsports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.Default(),
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

func (s *Service) Dashboard(ctx context.Context) (*statsdomain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "StatsService.Dashboard")
	defer span.End()
	result, err := s.inner.Dashboard(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to compute dashboard", slog.String("error", err.Error()))
		}
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("stats.orders", result.TotalOrders),
		attribute.Int("stats.plants", result.TotalPlants),
	)
	return result, nil
}

var _ statsports.Service = (*Service)(nil)
