package service

import (
	"context"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"
)

// TransactionSource loads the full transaction history.
type TransactionSource interface {
	// Source names the underlying resource for logs and errors
	Source() string

	// Load reads and normalizes every transaction, returning the time spent
	Load(ctx context.Context) (*models.TransactionTable, time.Duration, error)
}

// Scorer talks to the two scoring services and the offer service.
type Scorer interface {
	// PredictATS returns the estimated purchase amount
	PredictATS(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error)

	// PredictResp returns the estimated purchase likelihood
	PredictResp(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error)

	// AssignOffer returns the offer label for a combined prediction
	AssignOffer(ctx context.Context, memberID string, prediction models.Prediction) (string, error)
}

// ReportStore persists one report per member.
type ReportStore interface {
	// Upsert inserts the report or replaces the member's existing one
	Upsert(ctx context.Context, report *models.Report) error

	// GetByMemberID returns the stored report, or nil when there is none
	GetByMemberID(ctx context.Context, memberID string) (*models.Report, error)
}

// EventPublisher announces finished reports.
type EventPublisher interface {
	Publish(ctx context.Context, report *models.Report) error
}
