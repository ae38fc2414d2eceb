package api

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
)

//go:embed seed/plants.yaml
var seedCatalog []byte

type seedPlant struct {
	Name        string  `mapstructure:"name"`
	Category    string  `mapstructure:"category"`
	Price       float64 `mapstructure:"price"`
	Stock       int     `mapstructure:"stock"`
	Featured    bool    `mapstructure:"featured"`
	Description string  `mapstructure:"description"`
	Image       string  `mapstructure:"image"`
}

func loadSeedCatalog(raw []byte) ([]seedPlant, error) {
	doc, err := yaml.Parser().Unmarshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse seed catalog")
	}
	var plants []seedPlant
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &plants,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build seed decoder")
	}
	if err := decoder.Decode(doc["plants"]); err != nil {
		return nil, errors.Wrap(err, "decode seed catalog")
	}
	return plants, nil
}

// SeedCatalog adds the bundled plants when the catalog is empty. Each plant
// goes through AddProduct so its opening stock is a restock in the ledger.
func SeedCatalog(ctx context.Context, catalog catalogports.Service, logger *slog.Logger) (int, error) {
	existing, err := catalog.List(ctx, catalogports.ListInput{})
	if err != nil {
		return 0, errors.Wrap(err, "inspect catalog")
	}
	if len(existing.Products) > 0 {
		return 0, nil
	}
	plants, err := loadSeedCatalog(seedCatalog)
	if err != nil {
		return 0, err
	}
	for _, p := range plants {
		if _, err := catalog.AddProduct(ctx, catalogports.AddProductInput{
			Name:        p.Name,
			Category:    p.Category,
			Price:       decimal.NewFromFloat(p.Price),
			Stock:       p.Stock,
			Featured:    p.Featured,
			Description: p.Description,
			Image:       p.Image,
		}); err != nil {
			return 0, errors.Wrapf(err, "seed plant %q", p.Name)
		}
	}
	logger.Info("catalog seeded", slog.Int("plants", len(plants)))
	return len(plants), nil
}

// EnsureAdmin makes sure the configured administrator account exists.
func EnsureAdmin(ctx context.Context, cfg Config, users userports.Service, logger *slog.Logger) error {
	admin, err := users.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		return errors.Wrap(err, "ensure admin account")
	}
	logger.Info("admin account ready", slog.String("email", admin.Email))
	return nil
}
