package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/portfolio-tracker/internal/domain"
)

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) CreateIfAbsent(ctx context.Context, asset *domain.Asset) (bool, error) {
	args := m.Called(ctx, asset)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal, observedAt time.Time) error {
	args := m.Called(ctx, symbol, price, observedAt)
	return args.Error(0)
}

func (m *MockAssetRepository) List(ctx context.Context, category domain.AssetCategory) ([]*domain.Asset, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

// MockConfigRepository is a mock implementation of ConfigRepository for testing
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfigEntry), args.Error(1)
}

func (m *MockConfigRepository) Put(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockConfigRepository) SetDefault(ctx context.Context, key, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func TestSeed_CreatesDefaultsOnFreshStore(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockConfigRepo := new(MockConfigRepository)
	seeder := NewSeeder(mockAssetRepo, mockConfigRepo)

	mockAssetRepo.On("CreateIfAbsent", ctx, mock.AnythingOfType("*domain.Asset")).Return(true, nil)
	mockConfigRepo.On("SetDefault", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(true, nil)

	err := seeder.Seed(ctx)

	assert.NoError(t, err)
	mockAssetRepo.AssertNumberOfCalls(t, "CreateIfAbsent", len(defaultAssets))
	mockConfigRepo.AssertNumberOfCalls(t, "SetDefault", len(defaultConfig))
}

func TestSeed_SecondRunLeavesExistingRowsAlone(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockConfigRepo := new(MockConfigRepository)
	seeder := NewSeeder(mockAssetRepo, mockConfigRepo)

	// Everything already exists: inserts report no-ops, seeding still succeeds
	mockAssetRepo.On("CreateIfAbsent", ctx, mock.AnythingOfType("*domain.Asset")).Return(false, nil)
	mockConfigRepo.On("SetDefault", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(false, nil)

	err := seeder.Seed(ctx)

	assert.NoError(t, err)
}

func TestSeed_NeverSeedsPrices(t *testing.T) {
	for _, asset := range defaultAssets {
		assert.Nil(t, asset.CurrentPrice, "seeded asset %s must start with its price pending", asset.Symbol)
	}
}
