package seeder

import (
	"context"

	"github.com/portfolio-tracker/internal/domain"
)

// Default catalog entries seeded on startup. Prices are never seeded:
// every asset starts with its price pending until the first live fetch.
var defaultAssets = []domain.Asset{
	{Symbol: "AAPL", Name: "Apple Inc.", Category: domain.CategoryStocks, Exchange: "NASDAQ", APISource: "alphavantage", APIID: "AAPL"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Category: domain.CategoryStocks, Exchange: "NASDAQ", APISource: "alphavantage", APIID: "MSFT"},
	{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", Category: domain.CategoryETFs, Exchange: "NYSE", APISource: "alphavantage", APIID: "VOO"},
	{Symbol: "BTC", Name: "Bitcoin", Category: domain.CategoryCrypto, Subcategory: "coin", APISource: "coingecko", APIID: "bitcoin"},
	{Symbol: "ETH", Name: "Ethereum", Category: domain.CategoryCrypto, Subcategory: "coin", APISource: "coingecko", APIID: "ethereum"},
	{Symbol: "USD", Name: "US Dollar", Category: domain.CategoryFiat},
	{Symbol: "EUR", Name: "Euro", Category: domain.CategoryFiat},
}

// Config defaults written with insert-if-absent semantics, so existing
// deployments keep their values.
var defaultConfig = map[string]string{
	domain.ConfigKeyPassword: "changeme",
	domain.ConfigKeyVersion:  "1.0.0",
}

// Seeder ensures the default asset catalog and config entries exist
type Seeder struct {
	assetRepo  domain.AssetRepository
	configRepo domain.ConfigRepository
}

// NewSeeder creates a new Seeder instance
func NewSeeder(assetRepo domain.AssetRepository, configRepo domain.ConfigRepository) *Seeder {
	return &Seeder{
		assetRepo:  assetRepo,
		configRepo: configRepo,
	}
}

// Seed inserts the default assets and config keys that are absent.
// Safe to run on every startup: existing rows are left untouched.
func (s *Seeder) Seed(ctx context.Context) error {
	for i := range defaultAssets {
		asset := defaultAssets[i]
		if err := asset.Validate(); err != nil {
			return err
		}
		if _, err := s.assetRepo.CreateIfAbsent(ctx, &asset); err != nil {
			return err
		}
	}

	for key, value := range defaultConfig {
		if _, err := s.configRepo.SetDefault(ctx, key, value); err != nil {
			return err
		}
	}

	return nil
}
