package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"go.uber.org/zap"
)

var requiredColumns = []string{
	models.ColumnMemberID,
	models.ColumnTimestamp,
	models.ColumnType,
	models.ColumnPointsBought,
	models.ColumnRevenueUSD,
}

// missingMarkers are cell texts read as absent values.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// CSVTransactionRepository reads the transaction history from a CSV file.
type CSVTransactionRepository struct {
	path   string
	logger *zap.Logger
}

func NewCSVTransactionRepository(path string, logger *zap.Logger) *CSVTransactionRepository {
	return &CSVTransactionRepository{
		path:   path,
		logger: logger,
	}
}

func (r *CSVTransactionRepository) Source() string {
	return r.path
}

// Load reads and normalizes every row of the file.
func (r *CSVTransactionRepository) Load(ctx context.Context) (*models.TransactionTable, time.Duration, error) {
	start := time.Now()

	raw, err := r.ReadRaw(ctx)
	if err != nil {
		return nil, time.Since(start), err
	}

	rows := make([]models.Transaction, len(raw))
	for i, tx := range raw {
		rows[i] = tx.Normalize()
	}
	table := models.NewTransactionTable(rows)

	elapsed := time.Since(start)
	r.logger.Info("Read member data",
		zap.String("source", r.path),
		zap.Int("rows", table.Len()),
		zap.Int("members", table.MemberCount()),
		zap.Duration("latency", elapsed),
	)
	return table, elapsed, nil
}

// ReadRaw returns the file rows without defaults applied.
func (r *CSVTransactionRepository) ReadRaw(ctx context.Context) ([]models.RawTransaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &models.LoadError{Source: r.path, Err: err}
	}
	defer f.Close()

	raw, err := ParseTransactionsCSV(ctx, f)
	if err != nil {
		return nil, &models.LoadError{Source: r.path, Err: err}
	}
	return raw, nil
}

// ParseTransactionsCSV parses a transaction history with a header row.
// Columns are matched by name; empty cells and missingMarkers are absent values.
func ParseTransactionsCSV(ctx context.Context, in io.Reader) ([]models.RawTransaction, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[cleanText(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var out []models.RawTransaction
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		cell := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			v := cleanText(record[i])
			if missingMarkers[v] {
				return ""
			}
			return v
		}

		tx := models.RawTransaction{
			MemberID:  cell(models.ColumnMemberID),
			Type:      optionalText(cell(models.ColumnType)),
			Timestamp: optionalText(cell(models.ColumnTimestamp)),
		}
		if tx.PointsBought, err = optionalAmount(cell(models.ColumnPointsBought)); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, models.ColumnPointsBought, err)
		}
		if tx.RevenueUSD, err = optionalAmount(cell(models.ColumnRevenueUSD)); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, models.ColumnRevenueUSD, err)
		}
		out = append(out, tx)
	}

	return out, nil
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalAmount(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("not a finite number: %q", s)
	}
	return &v, nil
}
