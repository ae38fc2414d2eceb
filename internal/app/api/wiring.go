package api

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogobs "github.com/Apurer/plant-nursery-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/plant-nursery-api/internal/domains/catalog/application"
	contactobs "github.com/Apurer/plant-nursery-api/internal/domains/contact/adapters/observability"
	contactapp "github.com/Apurer/plant-nursery-api/internal/domains/contact/application"
	inventoryobs "github.com/Apurer/plant-nursery-api/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Apurer/plant-nursery-api/internal/domains/inventory/application"
	orderobs "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/plant-nursery-api/internal/domains/orders/application"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	statsobs "github.com/Apurer/plant-nursery-api/internal/domains/stats/adapters/observability"
	statsapp "github.com/Apurer/plant-nursery-api/internal/domains/stats/application"
	userobs "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/observability"
	usersapp "github.com/Apurer/plant-nursery-api/internal/domains/users/application"
	"github.com/Apurer/plant-nursery-api/internal/platform/auth"
	platformobservability "github.com/Apurer/plant-nursery-api/internal/platform/observability"
	"github.com/Apurer/plant-nursery-api/internal/server"
)

// BuildServices constructs every application service over st and wraps
// each one in its observability decorator. Placement is left unset.
func BuildServices(cfg Config, st *Storage, instruments *platformobservability.Instruments) (server.Services, error) {
	logger := effectiveLogger(instruments)
	backend := st.Backend

	tokens, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return server.Services{}, errors.Wrap(err, "configure token issuer")
	}

	return server.Services{
		Catalog: catalogobs.New(
			catalogapp.NewService(backend.Products(), backend),
			catalogobs.WithLogger(logger),
			catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
			catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
		),
		Inventory: inventoryobs.New(
			inventoryapp.NewService(backend.Products(), backend.Ledger(), backend),
			inventoryobs.WithLogger(logger),
			inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
			inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
		),
		Orders: NewOrderService(cfg, st, instruments),
		Stats: statsobs.New(
			statsapp.NewService(backend),
			statsobs.WithLogger(logger),
			statsobs.WithTracer(instruments.Tracer("internal.stats.application")),
		),
		Users: userobs.New(
			usersapp.NewService(backend.Users(), backend, st.Sessions, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens),
			userobs.WithLogger(logger),
			userobs.WithTracer(instruments.Tracer("internal.users.application")),
			userobs.WithMeter(instruments.Meter("internal.users.application")),
		),
		Contact: contactobs.New(
			contactapp.NewService(backend.Messages(), backend),
			contactobs.WithLogger(logger),
			contactobs.WithTracer(instruments.Tracer("internal.contact.application")),
			contactobs.WithMeter(instruments.Meter("internal.contact.application")),
		),
	}, nil
}

// NewOrderService builds the decorated order service. The worker process
// uses it to run placement activities.
func NewOrderService(cfg Config, st *Storage, instruments *platformobservability.Instruments) orderports.Service {
	return orderobs.New(
		ordersapp.NewService(
			st.Backend.Orders(),
			st.Backend,
			ordersapp.WithStrictTransitions(cfg.Orders.StrictTransitions),
			ordersapp.WithRestockOnCancel(cfg.Orders.RestockOnCancel),
		),
		orderobs.WithLogger(effectiveLogger(instruments)),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

// ConnectTemporal dials the configured Temporal frontend with tracing.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, errors.Wrap(err, "configure temporal tracing interceptor")
	}
	options := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	c, err := client.Dial(options)
	if err != nil {
		return nil, errors.Wrapf(err, "dial temporal at %s", cfg.Temporal.Address)
	}
	return c, nil
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
