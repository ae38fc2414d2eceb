package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	contactdomain "github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
)

const tracerName = "github.com/Apurer/plant-nursery-api/internal/domains/contact/adapters/observability/service"

type Service struct {
	inner     contactports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	submitted metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.submitted, _ = m.Int64Counter("contact.service.messages", metric.WithDescription("Number of contact messages received"))
	}
}

// New wraps the contact service.
func New(inner contactports.Service, opts ...Option) contactports.Service {
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

func (s *Service) Submit(ctx context.Context, input contactports.SubmitInput) (*contactdomain.Message, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Submit")
	defer span.End()
	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to store contact message")
	}
	if s.submitted != nil {
		s.submitted.Add(ctx, 1)
	}
	span.SetAttributes(attribute.String("message.id", result.ID))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "contact message received", slog.String("message.id", result.ID))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*contactdomain.Message, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.List")
	defer span.End()
	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list contact messages")
	}
	return result, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (*contactdomain.Message, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.MarkRead", trace.WithAttributes(attribute.String("message.id", id)))
	defer span.End()
	result, err := s.inner.MarkRead(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark message read", slog.String("message.id", id))
	}
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ contactports.Service = (*Service)(nil)
