// Package observability sets up the process logger and OpenTelemetry
// providers shared by the API, worker and housekeeping binaries.
package observability

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Instruments is what Init hands to the rest of the process.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Option tunes Init.
type Option func(*settings)

type settings struct {
	level        slog.Level
	textLogs     bool
	environment  string
	sampleRatio  float64
	otlpEndpoint string
	otlpInsecure bool
}

func WithLogLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithTextLogs switches the process logger from JSON to key=value text.
func WithTextLogs(enabled bool) Option {
	return func(s *settings) { s.textLogs = enabled }
}

// WithSampleRatio samples root spans at ratio; child spans follow their parent.
// Values outside [0, 1] are ignored.
func WithSampleRatio(ratio float64) Option {
	return func(s *settings) {
		if ratio >= 0 && ratio <= 1 {
			s.sampleRatio = ratio
		}
	}
}

func WithEnvironment(env string) Option {
	return func(s *settings) {
		if env != "" {
			s.environment = env
		}
	}
}

// WithOTLPEndpoint overrides OTEL_EXPORTER_OTLP_ENDPOINT.
func WithOTLPEndpoint(endpoint string, insecure bool) Option {
	return func(s *settings) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			s.otlpEndpoint = endpoint
			s.otlpInsecure = insecure
		}
	}
}

func defaultSettings() settings {
	return settings{
		level:        slog.LevelInfo,
		environment:  envOrDefault("ENVIRONMENT", "local"),
		sampleRatio:  1,
		otlpEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		otlpInsecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
	}
}

// Init installs the process logger as slog's default and registers global
// tracer and meter providers. The returned shutdown flushes both.
func Init(ctx context.Context, serviceName string, opts ...Option) (*Instruments, func(context.Context) error, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	logger := newLogger(cfg.level, cfg.textLogs)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("deployment.environment", cfg.environment),
		),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build telemetry resource")
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.sampleRatio))),
		sdktrace.WithBatcher(spanExporter(ctx, cfg, logger)),
	)
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Debug("telemetry ready",
		slog.String("service", serviceName),
		slog.String("environment", cfg.environment),
		slog.Float64("sample_ratio", cfg.sampleRatio),
	)

	flushers := []func(context.Context) error{meterProvider.Shutdown, tracerProvider.Shutdown}
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, flush := range flushers {
			errs = append(errs, flush(ctx))
		}
		return stderrors.Join(errs...)
	}
	return &Instruments{Logger: logger, TracerProvider: tracerProvider, MeterProvider: meterProvider}, shutdown, nil
}

// Tracer returns a named tracer, falling back to the global provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter, or a no-op meter when none is configured.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

func newLogger(level slog.Level, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level, AddSource: true}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if text {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// spanExporter prefers OTLP over HTTP and falls back to pretty-printed
// stdout spans when the exporter cannot be built.
func spanExporter(ctx context.Context, cfg settings, logger *slog.Logger) sdktrace.SpanExporter {
	var opts []otlptracehttp.Option
	if cfg.otlpEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.otlpEndpoint))
	}
	if cfg.otlpInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter
	}
	logger.Warn("OTLP exporter unavailable, writing spans to stdout", slog.String("error", err.Error()))
	stdout, stdoutErr := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if stdoutErr != nil {
		logger.Error("stdout span exporter unavailable", slog.String("error", stdoutErr.Error()))
		return discardExporter{}
	}
	return stdout
}

// discardExporter drops spans.
type discardExporter struct{}

func (discardExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (discardExporter) Shutdown(context.Context) error { return nil }

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
