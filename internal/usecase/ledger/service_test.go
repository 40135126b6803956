package ledger

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

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListBySymbol(ctx context.Context, symbol string) ([]*domain.Transaction, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int, symbol string) ([]*domain.Transaction, error) {
	args := m.Called(ctx, limit, offset, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, symbol string) (int, error) {
	args := m.Called(ctx, symbol)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) Symbols(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func appleAsset() *domain.Asset {
	return &domain.Asset{
		Symbol:   "AAPL",
		Name:     "Apple Inc.",
		Category: domain.CategoryStocks,
	}
}

func buyInput() RecordTransactionInput {
	return RecordTransactionInput{
		Type:         domain.TransactionBuy,
		AssetSymbol:  "AAPL",
		Exchange:     "NASDAQ",
		Quantity:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(100),
		Fees:         decimal.NewFromInt(1),
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordTransaction_Success(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAssetRepo, mockTxRepo)

	mockAssetRepo.On("GetBySymbol", ctx, "AAPL").Return(appleAsset(), nil)
	mockTxRepo.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	tx, err := service.RecordTransaction(ctx, buyInput())

	assert.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "USD", tx.Currency) // default currency
	mockAssetRepo.AssertExpectations(t)
	mockTxRepo.AssertExpectations(t)
}

func TestRecordTransaction_UnknownSymbol(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAssetRepo, mockTxRepo)

	mockAssetRepo.On("GetBySymbol", ctx, "UNKNOWN").
		Return(nil, domain.NewNotFoundError("asset", "UNKNOWN"))

	input := buyInput()
	input.AssetSymbol = "UNKNOWN"

	_, err := service.RecordTransaction(ctx, input)

	assert.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordTransaction_InvalidType(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAssetRepo, mockTxRepo)

	mockAssetRepo.On("GetBySymbol", ctx, "AAPL").Return(appleAsset(), nil)

	input := buyInput()
	input.Type = "invalid_type"

	_, err := service.RecordTransaction(ctx, input)

	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordTransaction_NonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAssetRepo, mockTxRepo)

	mockAssetRepo.On("GetBySymbol", ctx, "AAPL").Return(appleAsset(), nil)

	input := buyInput()
	input.Quantity = decimal.NewFromInt(-3)

	_, err := service.RecordTransaction(ctx, input)

	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestRecordTransaction_SuppliedTotalMustMatchProduct(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAssetRepo, mockTxRepo)

	mockAssetRepo.On("GetBySymbol", ctx, "AAPL").Return(appleAsset(), nil)

	drifted := decimal.NewFromInt(995)
	input := buyInput()
	input.TotalAmount = &drifted

	_, err := service.RecordTransaction(ctx, input)

	assert.Error(t, err)
	assert.True(t, domain.IsArithmeticMismatch(err))
	mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordTransaction_SuppliedTotalAccepted(t *testing.T) {
	ctx := context.Background()
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAssetRepo, mockTxRepo)

	mockAssetRepo.On("GetBySymbol", ctx, "AAPL").Return(appleAsset(), nil)
	mockTxRepo.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	exact := decimal.NewFromInt(1000)
	input := buyInput()
	input.TotalAmount = &exact

	tx, err := service.RecordTransaction(ctx, input)

	assert.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(exact))
	mockTxRepo.AssertExpectations(t)
}
