//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "plant-nursery-api"
	ConsumerName = "nursery-storefront"

	StateCatalogSeeded = "catalog with plant 1 in stock"
	StatePlantMissing  = "no plant with id 404"
	StateLowStock      = "catalog with plant 1 holding 2 units"
)

const (
	ExistingPlantID int64 = 1
	MissingPlantID  int64 = 404

	ExamplePlantName     = "Tulsi"
	ExamplePlantCategory = "medicinal"
	ExamplePlantPrice    = 150
	ExamplePlantStock    = 20
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCheckoutPayload is the storefront's checkout request.
func ExampleCheckoutPayload(quantity int) map[string]any {
	return map[string]any{
		"customerName":    "Pact Customer",
		"customerEmail":   "pact.customer@example.com",
		"customerAddress": "1 Contract Lane, Pune",
		"customerPhone":   "+919876543210",
		"items": []map[string]any{
			{"productId": ExistingPlantID, "quantity": quantity},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
