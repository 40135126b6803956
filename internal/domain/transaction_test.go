package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validBuy() *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		Type:         TransactionBuy,
		AssetSymbol:  "AAPL",
		Exchange:     "NASDAQ",
		Quantity:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(100),
		TotalAmount:  decimal.NewFromInt(1000),
		Fees:         decimal.NewFromInt(1),
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Currency:     "USD",
	}
}

func TestTransactionValidate_Valid(t *testing.T) {
	tx := validBuy()
	assert.NoError(t, tx.Validate())
}

func TestTransactionValidate_InvalidType(t *testing.T) {
	tx := validBuy()
	tx.Type = "invalid_type"

	err := tx.Validate()

	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTransactionValidate_NonPositiveQuantity(t *testing.T) {
	tx := validBuy()
	tx.Quantity = decimal.Zero

	err := tx.Validate()

	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTransactionValidate_NonPositivePrice(t *testing.T) {
	tx := validBuy()
	tx.PricePerUnit = decimal.NewFromInt(-5)
	tx.TotalAmount = decimal.NewFromInt(-50)

	err := tx.Validate()

	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTransactionValidate_NegativeFees(t *testing.T) {
	tx := validBuy()
	tx.Fees = decimal.NewFromInt(-1)

	err := tx.Validate()

	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTransactionValidate_TotalAmountMismatch(t *testing.T) {
	tx := validBuy()
	tx.TotalAmount = decimal.NewFromInt(999) // drifted from 10 * 100

	err := tx.Validate()

	assert.Error(t, err)
	assert.True(t, IsArithmeticMismatch(err))
	assert.False(t, IsValidation(err))
}

func TestTransactionValidate_BadPurchaseTime(t *testing.T) {
	tx := validBuy()
	tx.PurchaseTime = "25:99"

	err := tx.Validate()

	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTransactionValidate_PurchaseTimeOptional(t *testing.T) {
	tx := validBuy()
	tx.PurchaseTime = "14:30:00"
	assert.NoError(t, tx.Validate())

	tx.PurchaseTime = ""
	assert.NoError(t, tx.Validate())
}

func TestTransactionType_IncreasesPosition(t *testing.T) {
	assert.True(t, TransactionBuy.IncreasesPosition())
	assert.True(t, TransactionTradeIn.IncreasesPosition())
	assert.False(t, TransactionSell.IncreasesPosition())
	assert.False(t, TransactionTradeOut.IncreasesPosition())
}
