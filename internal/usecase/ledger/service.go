package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// LedgerService handles recording and reading transactions. The ledger is
// append-only; holdings recomputation is a separate explicit step owned by
// the caller, never a side effect of recording.
type LedgerService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(assetRepo domain.AssetRepository, transactionRepo domain.TransactionRepository) *LedgerService {
	return &LedgerService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
	}
}

// RecordTransactionInput carries the fields for a new ledger entry.
// TotalAmount is optional: when nil the service computes
// quantity * price_per_unit; when supplied it is verified against that
// product and rejected on drift.
type RecordTransactionInput struct {
	Type         domain.TransactionType
	AssetSymbol  string
	Exchange     string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalAmount  *decimal.Decimal
	Fees         decimal.Decimal
	Notes        string
	Date         time.Time

	PurchaseLocation string
	PurchaseTime     string
	PurchaseMethod   string
	Reference        string
	Currency         string
}

// RecordTransaction validates and appends a new transaction.
// Fails with NotFound if the symbol is not in the catalog, with
// ValidationError if the type is outside the closed set or quantity/price
// are non-positive, and with ArithmeticMismatch if a caller-supplied total
// disagrees with quantity * price_per_unit.
func (s *LedgerService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	// Every transaction must reference an existing asset
	if _, err := s.AssetRepo.GetBySymbol(ctx, input.AssetSymbol); err != nil {
		return nil, err
	}

	total := input.Quantity.Mul(input.PricePerUnit)
	if input.TotalAmount != nil {
		total = *input.TotalAmount
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	tx := &domain.Transaction{
		ID:               uuid.New(),
		Type:             input.Type,
		AssetSymbol:      input.AssetSymbol,
		Exchange:         input.Exchange,
		Quantity:         input.Quantity,
		PricePerUnit:     input.PricePerUnit,
		TotalAmount:      total,
		Fees:             input.Fees,
		Notes:            input.Notes,
		Date:             input.Date,
		PurchaseLocation: input.PurchaseLocation,
		PurchaseTime:     input.PurchaseTime,
		PurchaseMethod:   input.PurchaseMethod,
		Reference:        input.Reference,
		Currency:         currency,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// ListTransactions retrieves a paginated list, newest first, optionally
// filtered by symbol
func (s *LedgerService) ListTransactions(ctx context.Context, limit, offset int, symbol string) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.TransactionRepo.List(ctx, limit, offset, symbol)
}

// CountTransactions returns the number of transactions, optionally for one symbol
func (s *LedgerService) CountTransactions(ctx context.Context, symbol string) (int, error) {
	return s.TransactionRepo.Count(ctx, symbol)
}
