package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, type, asset_symbol, exchange, quantity, price_per_unit, total_amount,
		fees, notes, transaction_date, purchase_location, purchase_time, purchase_method,
		transaction_reference, currency`

// Create appends a new transaction to the ledger
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		string(tx.Type),
		tx.AssetSymbol,
		tx.Exchange,
		tx.Quantity.String(),
		tx.PricePerUnit.String(),
		tx.TotalAmount.String(),
		tx.Fees.String(),
		tx.Notes,
		tx.Date,
		tx.PurchaseLocation,
		tx.PurchaseTime,
		tx.PurchaseMethod,
		tx.Reference,
		tx.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ListBySymbol retrieves the full history for one symbol, oldest first
func (r *transactionRepository) ListBySymbol(ctx context.Context, symbol string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE asset_symbol = $1
		ORDER BY transaction_date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by symbol: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// List retrieves a paginated list of transactions, newest first
func (r *transactionRepository) List(ctx context.Context, limit, offset int, symbol string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
	`
	args := []interface{}{limit, offset}
	if symbol != "" {
		query += ` WHERE asset_symbol = $3`
		args = append(args, symbol)
	}
	query += ` ORDER BY transaction_date DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// Count returns the number of transactions, optionally for one symbol
func (r *transactionRepository) Count(ctx context.Context, symbol string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions`
	args := []interface{}{}
	if symbol != "" {
		query += ` WHERE asset_symbol = $1`
		args = append(args, symbol)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

// Symbols returns the distinct asset symbols that have transactions
func (r *transactionRepository) Symbols(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT asset_symbol FROM transactions ORDER BY asset_symbol`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction symbols: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	return symbols, rows.Err()
}

func collectTransactions(rows *sql.Rows) ([]*domain.Transaction, error) {
	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	var tx domain.Transaction
	var quantityStr, priceStr, totalStr, feesStr string
	var exchange, notes, location, purchaseTime, method, reference sql.NullString

	err := rows.Scan(
		&tx.ID,
		&tx.Type,
		&tx.AssetSymbol,
		&exchange,
		&quantityStr,
		&priceStr,
		&totalStr,
		&feesStr,
		&notes,
		&tx.Date,
		&location,
		&purchaseTime,
		&method,
		&reference,
		&tx.Currency,
	)
	if err != nil {
		return nil, err
	}

	tx.Exchange = exchange.String
	tx.Notes = notes.String
	tx.PurchaseLocation = location.String
	tx.PurchaseTime = purchaseTime.String
	tx.PurchaseMethod = method.String
	tx.Reference = reference.String

	for _, field := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&tx.Quantity, quantityStr},
		{&tx.PricePerUnit, priceStr},
		{&tx.TotalAmount, totalStr},
		{&tx.Fees, feesStr},
	} {
		value, err := decimal.NewFromString(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse decimal column: %w", err)
		}
		*field.dst = value
	}

	return &tx, nil
}
