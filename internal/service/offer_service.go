package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"
	"github.com/shahrzads/ml-application-test-master/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OfferService runs the scoring pipeline for one member: load, derive
// features, score twice, combine, assign an offer.
type OfferService struct {
	source    TransactionSource
	features  *FeatureService
	scorer    Scorer
	reports   ReportStore
	publisher EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewOfferService(
	source TransactionSource,
	features *FeatureService,
	scorer Scorer,
	reports ReportStore,
	publisher EventPublisher,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		source:    source,
		features:  features,
		scorer:    scorer,
		reports:   reports,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
}

// FeatureResult is the outcome of deriving features without scoring.
type FeatureResult struct {
	MemberID    string
	Features    models.MemberFeatures
	Timings     models.FeatureTimings
	ReadLatency time.Duration
}

// Features loads the table and derives the member's features. It returns
// models.ErrUnknownMember when the member has no transactions.
func (s *OfferService) Features(ctx context.Context, memberID string) (*FeatureResult, error) {
	table, readLatency, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !table.Has(memberID) {
		return nil, fmt.Errorf("member %s: %w", memberID, models.ErrUnknownMember)
	}

	features, timings, err := s.features.Derive(table, memberID)
	if err != nil {
		return nil, err
	}

	return &FeatureResult{
		MemberID:    memberID,
		Features:    features,
		Timings:     timings,
		ReadLatency: readLatency,
	}, nil
}

// Summarize runs the full pipeline. A load error aborts the run. A malformed
// latest timestamp leaves the day count at zero, and a failed remote call
// leaves its field nil; the run continues in both cases.
func (s *OfferService) Summarize(ctx context.Context, memberID string) (*models.Report, error) {
	log := logger.ForMember(s.logger, memberID)
	log.Info("Summarizing member", zap.String("source", s.source.Source()))

	report := &models.Report{
		RunID:     uuid.New(),
		MemberID:  memberID,
		CreatedAt: s.now().UTC(),
	}

	table, readLatency, err := s.source.Load(ctx)
	report.Latencies.ReadData = readLatency
	if err != nil {
		return nil, fmt.Errorf("summarize member %s: %w", memberID, err)
	}
	if !table.Has(memberID) {
		log.Warn("Member has no transactions, features keep their defaults")
	}

	features, timings, err := s.features.Derive(table, memberID)
	if err != nil {
		if !errors.Is(err, models.ErrTimestampParse) {
			return nil, fmt.Errorf("summarize member %s: %w", memberID, err)
		}
		log.Warn("Day count unavailable, keeping its default", zap.Error(err))
	}
	report.Features = features
	report.Latencies.MemberFeatures = timings

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		report.ATSPrediction, report.Latencies.PredictionATS = s.score(ctx, log, memberID, PathPredictATS, features, s.scorer.PredictATS)
	}()
	go func() {
		defer wg.Done()
		report.RespPrediction, report.Latencies.PredictionResp = s.score(ctx, log, memberID, PathPredictResp, features, s.scorer.PredictResp)
	}()
	wg.Wait()

	prediction := Combine(report.ATSPrediction, report.RespPrediction)

	start := time.Now()
	offer, err := s.scorer.AssignOffer(ctx, memberID, prediction)
	report.Latencies.OfferAssignment = time.Since(start)
	if err != nil {
		log.Error("Offer assignment failed", zap.Error(err))
	} else {
		report.Offer = &offer
	}

	log.Info("Summarization completed",
		zap.Bool("ats_ok", report.ATSPrediction != nil),
		zap.Bool("resp_ok", report.RespPrediction != nil),
		zap.Bool("offer_ok", report.Offer != nil),
	)
	return report, nil
}

// SummarizeAndStore runs Summarize, saves the report and publishes it.
// A failed publish is logged, not returned.
func (s *OfferService) SummarizeAndStore(ctx context.Context, memberID string) (*models.Report, error) {
	report, err := s.Summarize(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if s.reports != nil {
		if err := s.reports.Upsert(ctx, report); err != nil {
			return report, fmt.Errorf("failed to save report for member %s: %w", memberID, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, report); err != nil {
			s.logger.Warn("Failed to publish report",
				zap.String("member_id", memberID),
				zap.Error(err),
			)
		}
	}

	return report, nil
}

// GetReport returns the member's stored report, or nil when there is none.
func (s *OfferService) GetReport(ctx context.Context, memberID string) (*models.Report, error) {
	if s.reports == nil {
		return nil, nil
	}
	return s.reports.GetByMemberID(ctx, memberID)
}

// Combine pairs the two scores for the offer service.
func Combine(ats, resp *float64) models.Prediction {
	return models.Prediction{
		ATSPrediction:  ats,
		RespPrediction: resp,
	}
}

type predictFunc func(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error)

func (s *OfferService) score(ctx context.Context, log *zap.Logger, memberID, endpoint string, features models.MemberFeatures, predict predictFunc) (*float64, time.Duration) {
	start := time.Now()
	v, err := predict(ctx, memberID, features)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("Scoring call failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, elapsed
	}
	return &v, elapsed
}
