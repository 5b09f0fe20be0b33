package service

import (
	"fmt"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"go.uber.org/zap"
)

// DefaultWindow is the number of most recent transactions used by the
// windowed averages.
const DefaultWindow = 3

const secondsPerDay = 24 * 60 * 60

// FeatureService derives the member feature record from a transaction table.
// Every statistic reads the member's rows afresh from the table index and
// never mutates the table.
type FeatureService struct {
	window int
	now    func() time.Time
	logger *zap.Logger
}

func NewFeatureService(window int, logger *zap.Logger) *FeatureService {
	if window <= 0 {
		window = DefaultWindow
	}
	return &FeatureService{
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *FeatureService) WithClock(now func() time.Time) *FeatureService {
	c := *s
	c.now = now
	return &c
}

// Window returns the size of the recent-transactions window.
func (s *FeatureService) Window() int {
	return s.window
}

// Derive computes all eight statistics and assembles the feature record.
// A statistic without data leaves its field at zero; callers that need the
// unknown-member signal must call the statistic directly or check the table.
// A malformed latest timestamp is returned as a TimestampParseError together
// with the record of the other seven statistics.
func (s *FeatureService) Derive(table *models.TransactionTable, memberID string) (models.MemberFeatures, models.FeatureTimings, error) {
	start := time.Now()
	s.logger.Debug("Creating member features", zap.String("member_id", memberID))

	var (
		f models.MemberFeatures
		t models.FeatureTimings
		v *float64
	)

	v, t.AvgPointsBought = s.AvgPointsBought(table, memberID)
	f.AvgPointsBought = valueOrZero(v)

	v, t.AvgRevenueUSD = s.AvgRevenueUSD(table, memberID)
	f.AvgRevenueUSD = valueOrZero(v)

	v, t.Last3AvgPointsBought = s.LastNAvgPointsBought(table, memberID, s.window)
	f.Last3AvgPointsBought = valueOrZero(v)

	v, t.Last3AvgRevenueUSD = s.LastNAvgRevenueUSD(table, memberID, s.window)
	f.Last3AvgRevenueUSD = valueOrZero(v)

	v, t.PctBuyTransactions = s.PctBuyTransactions(table, memberID)
	f.PctBuyTransactions = valueOrZero(v)

	v, t.PctGiftTransactions = s.PctGiftTransactions(table, memberID)
	f.PctGiftTransactions = valueOrZero(v)

	v, t.PctRedeemTransactions = s.PctRedeemTransactions(table, memberID)
	f.PctRedeemTransactions = valueOrZero(v)

	days, elapsed, err := s.DaysSinceLastTransaction(table, memberID)
	t.DaysSinceLastTransaction = elapsed
	if days != nil {
		f.DaysSinceLastTransaction = *days
	}

	t.Total = time.Since(start)
	s.logger.Debug("Finished creating member features",
		zap.String("member_id", memberID),
		zap.Duration("latency", t.Total),
	)

	if err != nil {
		return f, t, fmt.Errorf("derive features: %w", err)
	}
	return f, t, nil
}

// AvgPointsBought returns the mean points bought over the member's transactions.
func (s *FeatureService) AvgPointsBought(table *models.TransactionTable, memberID string) (*float64, time.Duration) {
	return s.average(table, memberID, models.FeatureAvgPointsBought, 0, pointsBought)
}

// AvgRevenueUSD returns the mean revenue over the member's transactions.
func (s *FeatureService) AvgRevenueUSD(table *models.TransactionTable, memberID string) (*float64, time.Duration) {
	return s.average(table, memberID, models.FeatureAvgRevenueUSD, 0, revenueUSD)
}

// LastNAvgPointsBought returns the mean points bought over the member's n
// most recent transactions, or over all of them when there are fewer than n.
func (s *FeatureService) LastNAvgPointsBought(table *models.TransactionTable, memberID string, n int) (*float64, time.Duration) {
	return s.average(table, memberID, models.FeatureLast3AvgPointsBought, n, pointsBought)
}

// LastNAvgRevenueUSD is LastNAvgPointsBought applied to revenue.
func (s *FeatureService) LastNAvgRevenueUSD(table *models.TransactionTable, memberID string, n int) (*float64, time.Duration) {
	return s.average(table, memberID, models.FeatureLast3AvgRevenueUSD, n, revenueUSD)
}

// PctBuyTransactions returns the share of the member's transactions of type buy.
func (s *FeatureService) PctBuyTransactions(table *models.TransactionTable, memberID string) (*float64, time.Duration) {
	return s.share(table, memberID, models.FeaturePctBuyTransactions, models.TransactionTypeBuy)
}

// PctGiftTransactions returns the share of the member's transactions of type gift.
func (s *FeatureService) PctGiftTransactions(table *models.TransactionTable, memberID string) (*float64, time.Duration) {
	return s.share(table, memberID, models.FeaturePctGiftTransactions, models.TransactionTypeGift)
}

// PctRedeemTransactions returns the share of the member's transactions of type redeem.
func (s *FeatureService) PctRedeemTransactions(table *models.TransactionTable, memberID string) (*float64, time.Duration) {
	return s.share(table, memberID, models.FeaturePctRedeemTransactions, models.TransactionTypeRedeem)
}

// DaysSinceLastTransaction returns the whole days, truncated toward zero,
// between now (UTC) and the member's latest transaction timestamp.
func (s *FeatureService) DaysSinceLastTransaction(table *models.TransactionTable, memberID string) (*int, time.Duration, error) {
	start := time.Now()
	rows := s.memberRows(table, memberID, models.FeatureDaysSinceLastTransaction)
	if len(rows) == 0 {
		return nil, time.Since(start), nil
	}

	models.SortByTimestampDesc(rows)
	latest := rows[0].Timestamp
	last, err := time.ParseInLocation(models.TimestampLayout, latest, time.UTC)
	if err != nil {
		return nil, time.Since(start), &models.TimestampParseError{
			MemberID: memberID,
			Value:    latest,
			Err:      err,
		}
	}

	days := int((s.now().Unix() - last.Unix()) / secondsPerDay)
	elapsed := time.Since(start)
	s.logCalculated(models.FeatureDaysSinceLastTransaction, memberID, elapsed)
	return &days, elapsed, nil
}

// average computes the rounded mean of field over the member's rows. A
// positive window restricts it to the most recent window rows.
func (s *FeatureService) average(table *models.TransactionTable, memberID, feature string, window int, field func(models.Transaction) float64) (*float64, time.Duration) {
	start := time.Now()
	rows := s.memberRows(table, memberID, feature)
	if len(rows) == 0 {
		return nil, time.Since(start)
	}

	if window > 0 {
		models.SortByTimestampDesc(rows)
		if len(rows) > window {
			rows = rows[:window]
		}
	}

	var sum float64
	for _, row := range rows {
		sum += field(row)
	}
	avg := round2(sum / float64(len(rows)))

	elapsed := time.Since(start)
	s.logCalculated(feature, memberID, elapsed)
	return &avg, elapsed
}

func (s *FeatureService) share(table *models.TransactionTable, memberID, feature string, txType models.TransactionType) (*float64, time.Duration) {
	start := time.Now()
	rows := s.memberRows(table, memberID, feature)
	if len(rows) == 0 {
		return nil, time.Since(start)
	}

	var matched int
	for _, row := range rows {
		if row.Type == txType {
			matched++
		}
	}

	pct := 0.0
	if total := len(rows); total > 0 {
		pct = round2(float64(matched) / float64(total))
	}

	elapsed := time.Since(start)
	s.logCalculated(feature, memberID, elapsed)
	return &pct, elapsed
}

func (s *FeatureService) memberRows(table *models.TransactionTable, memberID, feature string) []models.Transaction {
	rows := table.Member(memberID)
	if len(rows) == 0 {
		s.logger.Warn("No transactions for member",
			zap.String("member_id", memberID),
			zap.String("feature", feature),
		)
	}
	return rows
}

func (s *FeatureService) logCalculated(feature, memberID string, elapsed time.Duration) {
	s.logger.Info("Calculated feature",
		zap.String("feature", feature),
		zap.String("member_id", memberID),
		zap.Duration("latency", elapsed),
	)
}

func pointsBought(tx models.Transaction) float64 { return tx.PointsBought }

func revenueUSD(tx models.Transaction) float64 { return tx.RevenueUSD }

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
