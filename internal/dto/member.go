package dto

import (
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"
)

type FeaturesResponse struct {
	MemberID  string                `json:"member_id"`
	Features  models.MemberFeatures `json:"member_features"`
	Latencies map[string]float64    `json:"latencies"`
}

type ReportResponse struct {
	RunID          string                `json:"run_id"`
	MemberID       string                `json:"member_id"`
	Features       models.MemberFeatures `json:"member_features"`
	ATSPrediction  *float64              `json:"predict_ats_ep"`
	RespPrediction *float64              `json:"predict_resp_ep"`
	Offer          *string               `json:"offer_ep"`
	Latencies      map[string]float64    `json:"latencies"`
	CreatedAt      string                `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewFeaturesResponse(memberID string, features models.MemberFeatures, timings models.FeatureTimings, readLatency time.Duration) FeaturesResponse {
	latencies := map[string]float64{"read_data_latency": readLatency.Seconds()}
	for _, c := range timings.Columns("") {
		latencies[c.Name] = c.Value.(float64)
	}
	return FeaturesResponse{
		MemberID:  memberID,
		Features:  features,
		Latencies: latencies,
	}
}

func NewReportResponse(r *models.Report) ReportResponse {
	latencies := make(map[string]float64)
	for _, c := range r.Latencies.Columns() {
		latencies[c.Name] = c.Value.(float64)
	}
	return ReportResponse{
		RunID:          r.RunID.String(),
		MemberID:       r.MemberID,
		Features:       r.Features,
		ATSPrediction:  r.ATSPrediction,
		RespPrediction: r.RespPrediction,
		Offer:          r.Offer,
		Latencies:      latencies,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
