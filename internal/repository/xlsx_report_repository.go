package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// textColumns are written back as text when an existing workbook is rewritten.
var textColumns = map[string]bool{
	"member_id": true,
	"offer_ep":  true,
	"run_id":    true,
}

// XLSXReportRepository keeps one flattened report row per member in a
// single worksheet of an .xlsx workbook.
type XLSXReportRepository struct {
	path   string
	sheet  string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewXLSXReportRepository(path, sheet string, logger *zap.Logger) *XLSXReportRepository {
	if sheet == "" {
		sheet = "reports"
	}
	return &XLSXReportRepository{
		path:   path,
		sheet:  sheet,
		logger: logger,
	}
}

// Upsert writes the report, dropping any existing row with the same member_id.
func (r *XLSXReportRepository) Upsert(ctx context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.readRows()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	header := models.ColumnNames()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", r.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := r.writeRow(f, 1, toCells(header)); err != nil {
		return err
	}

	rowNum := 2
	for _, row := range existing {
		if row["member_id"] == report.MemberID {
			continue
		}
		cells := make([]any, len(header))
		for i, name := range header {
			cells[i] = restoreCell(name, row[name])
		}
		if err := r.writeRow(f, rowNum, cells); err != nil {
			return err
		}
		rowNum++
	}

	cols := report.Flatten()
	cells := make([]any, len(cols))
	for i, c := range cols {
		cells[i] = c.Value
	}
	if err := r.writeRow(f, rowNum, cells); err != nil {
		return err
	}

	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", r.path, err)
	}

	r.logger.Info("Report saved",
		zap.String("member_id", report.MemberID),
		zap.String("sink", r.path),
		zap.Int("rows", rowNum-1),
	)
	return nil
}

// GetByMemberID returns the stored report, or nil when the member has none.
func (r *XLSXReportRepository) GetByMemberID(ctx context.Context, memberID string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["member_id"] != memberID {
			continue
		}
		cells := make(map[string]any, len(row))
		for k, v := range row {
			cells[k] = v
		}
		return models.ReportFromColumns(cells)
	}
	return nil, nil
}

// readRows returns the data rows of the workbook keyed by header name.
// A missing workbook has no rows.
func (r *XLSXReportRepository) readRows() ([]map[string]string, error) {
	f, err := excelize.OpenFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				m[name] = row[i]
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *XLSXReportRepository) writeRow(f *excelize.File, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(r.sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// restoreCell turns a stored cell text back into the value it was written
// from, so numbers stay numeric across rewrites.
func restoreCell(name, v string) any {
	if v == "" {
		return nil
	}
	if textColumns[name] {
		return v
	}
	if f, err := cellNumber(v); err == nil {
		return f
	}
	return v
}

func toCells(names []string) []any {
	cells := make([]any, len(names))
	for i, n := range names {
		cells[i] = n
	}
	return cells
}
