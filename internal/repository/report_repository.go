package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const reportsTable = "member_reports"

// ReportRepository keeps one flattened report row per member in Postgres.
type ReportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReportRepository(db *pgxpool.Pool, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the report or replaces the member's existing row.
func (r *ReportRepository) Upsert(ctx context.Context, report *models.Report) error {
	cols := report.Flatten()
	names := make([]string, 0, len(cols)+2)
	values := make([]any, 0, len(cols)+2)
	updates := make([]string, 0, len(cols))

	for _, c := range cols {
		name := sqlColumn(c.Name)
		value := c.Value
		if name == "run_id" {
			value = report.RunID
		}
		names = append(names, name)
		values = append(values, value)
		if name != "member_id" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", name, name))
		}
	}

	now := time.Now().UTC()
	names = append(names, "created_at", "updated_at")
	values = append(values, now, now)
	updates = append(updates, "updated_at = EXCLUDED.updated_at")

	query := squirrel.Insert(reportsTable).
		Columns(names...).
		Values(values...).
		Suffix("ON CONFLICT (member_id) DO UPDATE SET " + strings.Join(updates, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}

	r.logger.Info("Report saved",
		zap.String("member_id", report.MemberID),
		zap.String("sink", reportsTable),
	)
	return nil
}

// GetByMemberID returns the stored report, or nil when the member has none.
func (r *ReportRepository) GetByMemberID(ctx context.Context, memberID string) (*models.Report, error) {
	names := models.ColumnNames()
	selects := make([]string, len(names))
	for i, name := range names {
		selects[i] = sqlColumn(name)
		if selects[i] == "run_id" {
			selects[i] = "run_id::text"
		}
	}

	query := squirrel.Select(append(selects, "updated_at")...).
		From(reportsTable).
		Where(squirrel.Eq{"member_id": memberID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	dest := make([]any, len(names)+1)
	ptrs := make([]any, len(dest))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(ptrs...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	row := make(map[string]any, len(names))
	for i, name := range names {
		row[name] = dest[i]
	}
	report, err := models.ReportFromColumns(row)
	if err != nil {
		return nil, fmt.Errorf("failed to decode report row: %w", err)
	}
	if updatedAt, ok := dest[len(names)].(time.Time); ok {
		report.CreatedAt = updatedAt
	}
	return report, nil
}

func sqlColumn(name string) string {
	return strings.ToLower(name)
}
