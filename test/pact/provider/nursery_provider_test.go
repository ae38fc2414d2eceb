//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/plant-nursery-api/test/pact"

	catalogapp "github.com/Apurer/plant-nursery-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	contactapp "github.com/Apurer/plant-nursery-api/internal/domains/contact/application"
	inventoryapp "github.com/Apurer/plant-nursery-api/internal/domains/inventory/application"
	ordersobs "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/plant-nursery-api/internal/domains/orders/application"
	statsapp "github.com/Apurer/plant-nursery-api/internal/domains/stats/application"
	usermemory "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/memory"
	usersapp "github.com/Apurer/plant-nursery-api/internal/domains/users/application"
	"github.com/Apurer/plant-nursery-api/internal/platform/auth"
	storagememory "github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
	"github.com/Apurer/plant-nursery-api/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNurseryProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	stockState := func(stock int) models.StateHandler {
		return func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.reset(t, stock)
			}
			return nil, nil
		}
	}

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateCatalogSeeded: stockState(pacttest.ExamplePlantStock),
			pacttest.StatePlantMissing:  stockState(pacttest.ExamplePlantStock),
			pacttest.StateLowStock:      stockState(2),
		},
		BeforeEach: func() error {
			app.reset(t, pacttest.ExamplePlantStock)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves a router rebuilt over fresh storage for each
// provider state.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t, pacttest.ExamplePlantStock)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		handler := app.handler
		app.mu.RUnlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB, stock int) {
	t.Helper()
	backend := storagememory.New(storagememory.Snapshot{Products: []*catalogdomain.Product{{
		ID:          pacttest.ExistingPlantID,
		Name:        pacttest.ExamplePlantName,
		Category:    pacttest.ExamplePlantCategory,
		Price:       decimal.NewFromInt(pacttest.ExamplePlantPrice),
		Stock:       stock,
		Featured:    true,
		Description: "Holy basil for the pact catalog.",
		Image:       "https://example.pact/plants/tulsi.jpg",
	}}})
	tokens, err := auth.NewJWTService("pact-secret", time.Hour)
	require.NoError(t, err)

	orders := ordersobs.New(ordersapp.NewService(backend.Orders(), backend))
	router := server.NewRouter(server.Services{
		Catalog:   catalogapp.NewService(backend.Products(), backend),
		Inventory: inventoryapp.NewService(backend.Products(), backend.Ledger(), backend),
		Orders:    orders,
		Placement: orderworkflows.NewInlinePlacement(orders),
		Stats:     statsapp.NewService(backend),
		Users:     usersapp.NewService(backend.Users(), backend, usermemory.NewSessionStore(), auth.NewBcryptHasher(4), tokens),
		Contact:   contactapp.NewService(backend.Messages(), backend),
	}, server.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	a.mu.Lock()
	a.handler = router
	a.mu.Unlock()
}
