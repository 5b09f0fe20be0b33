package service

import (
	"context"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"

	"github.com/stretchr/testify/mock"
)

type stubSource struct {
	table *models.TransactionTable
	err   error
}

func (s *stubSource) Source() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) (*models.TransactionTable, time.Duration, error) {
	if s.err != nil {
		return nil, time.Millisecond, &models.LoadError{Source: "stub", Err: s.err}
	}
	return s.table, time.Millisecond, nil
}

type mockScorer struct {
	mock.Mock
}

func (m *mockScorer) PredictATS(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error) {
	args := m.Called(ctx, memberID, features)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockScorer) PredictResp(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error) {
	args := m.Called(ctx, memberID, features)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockScorer) AssignOffer(ctx context.Context, memberID string, prediction models.Prediction) (string, error) {
	args := m.Called(ctx, memberID, prediction)
	return args.String(0), args.Error(1)
}

type mockReportStore struct {
	mock.Mock
}

func (m *mockReportStore) Upsert(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportStore) GetByMemberID(ctx context.Context, memberID string) (*models.Report, error) {
	args := m.Called(ctx, memberID)
	if r := args.Get(0); r != nil {
		return r.(*models.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
