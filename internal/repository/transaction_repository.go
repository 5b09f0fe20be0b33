package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const transactionsTable = "member_transactions"

var transactionColumns = []string{"member_id", "transaction_ts", "transaction_type", "points_bought", "revenue_usd"}

// TransactionRepository reads and imports the transaction history in Postgres.
type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Source() string {
	return "postgres:" + transactionsTable
}

// Load reads every row in insertion order and normalizes it.
func (r *TransactionRepository) Load(ctx context.Context) (*models.TransactionTable, time.Duration, error) {
	start := time.Now()

	query := squirrel.Select(transactionColumns...).
		From(transactionsTable).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, time.Since(start), &models.LoadError{Source: r.Source(), Err: err}
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, time.Since(start), &models.LoadError{Source: r.Source(), Err: err}
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var raw models.RawTransaction
		if err := rows.Scan(&raw.MemberID, &raw.Timestamp, &raw.Type, &raw.PointsBought, &raw.RevenueUSD); err != nil {
			return nil, time.Since(start), &models.LoadError{Source: r.Source(), Err: err}
		}
		transactions = append(transactions, raw.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, time.Since(start), &models.LoadError{Source: r.Source(), Err: err}
	}

	table := models.NewTransactionTable(transactions)
	elapsed := time.Since(start)
	r.logger.Info("Read member data",
		zap.String("source", r.Source()),
		zap.Int("rows", table.Len()),
		zap.Int("members", table.MemberCount()),
		zap.Duration("latency", elapsed),
	)
	return table, elapsed, nil
}

// Import bulk-copies raw rows, keeping absent values as NULL.
func (r *TransactionRepository) Import(ctx context.Context, transactions []models.RawTransaction) (int64, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{transactionsTable},
		transactionColumns,
		pgx.CopyFromSlice(len(transactions), func(i int) ([]any, error) {
			tx := transactions[i]
			return []any{cleanText(tx.MemberID), tx.Timestamp, tx.Type, tx.PointsBought, tx.RevenueUSD}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to import transactions: %w", err)
	}

	r.logger.Info("Imported transactions", zap.Int64("rows", n))
	return n, nil
}
