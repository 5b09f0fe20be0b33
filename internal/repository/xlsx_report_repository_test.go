package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func testReport(memberID, offer string, ats float64) *models.Report {
	r := &models.Report{
		RunID:    uuid.New(),
		MemberID: memberID,
		Features: models.MemberFeatures{
			AvgPointsBought:          150,
			AvgRevenueUSD:            15,
			PctBuyTransactions:       0.5,
			PctGiftTransactions:      0.5,
			DaysSinceLastTransaction: 90,
		},
		ATSPrediction: &ats,
		Latencies: models.Latencies{
			ReadData:        25 * time.Millisecond,
			PredictionATS:   120 * time.Millisecond,
			OfferAssignment: 40 * time.Millisecond,
		},
	}
	if offer != "" {
		r.Offer = &offer
	}
	return r
}

func TestXLSXReportRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reports.xlsx")
	repo := NewXLSXReportRepository(path, "", zap.NewNop())

	got, err := repo.GetByMemberID(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(ctx, testReport("A", "OFFER_1", 10)))
	require.NoError(t, repo.Upsert(ctx, testReport("B", "", 20)))
	replacement := testReport("A", "OFFER_2", 30)
	require.NoError(t, repo.Upsert(ctx, replacement))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("reports")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.ColumnNames(), rows[0])
	assert.Equal(t, "B", rows[1][0])
	assert.Equal(t, "A", rows[2][0])

	stored, err := repo.GetByMemberID(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, replacement.RunID, stored.RunID)
	assert.Equal(t, replacement.Features, stored.Features)
	assert.Equal(t, "OFFER_2", *stored.Offer)
	assert.Equal(t, 30.0, *stored.ATSPrediction)
	assert.Nil(t, stored.RespPrediction)
	assert.Equal(t, replacement.Latencies, stored.Latencies)

	other, err := repo.GetByMemberID(ctx, "B")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Nil(t, other.Offer)
	assert.Equal(t, 20.0, *other.ATSPrediction)
	assert.Equal(t, 90, other.Features.DaysSinceLastTransaction)
}

func TestXLSXReportRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewXLSXReportRepository(filepath.Join(t.TempDir(), "reports.xlsx"), "reports", zap.NewNop())
	assert.ErrorIs(t, repo.Upsert(ctx, testReport("A", "", 1)), context.Canceled)
}

func TestRestoreCell(t *testing.T) {
	assert.Nil(t, restoreCell("predict_ats_ep", ""))
	assert.Equal(t, 1.5, restoreCell("predict_ats_ep", "1.5"))
	assert.Equal(t, "007", restoreCell("member_id", "007"))
	assert.Equal(t, "n/a", restoreCell("read_data_latency", "n/a"))
}
