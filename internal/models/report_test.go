package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	offer := "OFFER_1"
	return &Report{
		RunID:    uuid.MustParse("6f1c2a1e-8d4b-4c53-9a43-3f1a7c0e2b11"),
		MemberID: "5D72524D",
		Features: MemberFeatures{
			AvgPointsBought:          150,
			AvgRevenueUSD:            15,
			Last3AvgPointsBought:     150,
			Last3AvgRevenueUSD:       15,
			PctBuyTransactions:       0.5,
			PctGiftTransactions:      0.5,
			DaysSinceLastTransaction: 90,
		},
		ATSPrediction: ptr(150.0),
		Offer:         &offer,
		Latencies: Latencies{
			ReadData: 20 * time.Millisecond,
			MemberFeatures: FeatureTimings{
				Total:           5 * time.Millisecond,
				AvgPointsBought: time.Millisecond,
			},
			PredictionATS:   100 * time.Millisecond,
			PredictionResp:  200 * time.Millisecond,
			OfferAssignment: 50 * time.Millisecond,
		},
	}
}

func TestReport_Flatten(t *testing.T) {
	cols := sampleReport().Flatten()

	names := make([]string, len(cols))
	values := make(map[string]any, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		values[c.Name] = c.Value
	}

	assert.Equal(t, []string{
		"member_id",
		"AVG_POINTS_BOUGHT",
		"AVG_REVENUE_USD",
		"LAST_3_TRANSACTIONS_AVG_POINTS_BOUGHT",
		"LAST_3_TRANSACTIONS_AVG_REVENUE_USD",
		"PCT_BUY_TRANSACTIONS",
		"PCT_GIFT_TRANSACTIONS",
		"PCT_REDEEM_TRANSACTIONS",
		"DAYS_SINCE_LAST_TRANSACTION",
		"predict_ats_ep",
		"predict_resp_ep",
		"offer_ep",
		"read_data_latency",
		"member_features_latency_transform_features_latency",
		"member_features_latency_avg_points_bought_latency",
		"member_features_latency_avg_revenue_usd_latency",
		"member_features_latency_last_3_transactions_avg_points_bought_latency",
		"member_features_latency_last_3_transactions_avg_revenue_usd_latency",
		"member_features_latency_pct_buy_transactions_latency",
		"member_features_latency_pct_gift_transactions_latency",
		"member_features_latency_pct_redeem_transactions_latency",
		"member_features_latency_days_since_last_transaction_latency",
		"prediction_ats_ep_latency",
		"prediction_resp_ep_latency",
		"offer_ep_latency",
		"run_id",
	}, names)
	assert.Equal(t, names, ColumnNames())

	assert.Equal(t, "5D72524D", values["member_id"])
	assert.Equal(t, 150.0, values["predict_ats_ep"])
	assert.Nil(t, values["predict_resp_ep"])
	assert.Equal(t, "OFFER_1", values["offer_ep"])
	assert.Equal(t, 90, values["DAYS_SINCE_LAST_TRANSACTION"])
	assert.InDelta(t, 0.02, values["read_data_latency"], 1e-9)
	assert.InDelta(t, 0.001, values["member_features_latency_avg_points_bought_latency"], 1e-9)
}

func TestReportFromColumns_RoundTrip(t *testing.T) {
	want := sampleReport()

	t.Run("typed cells", func(t *testing.T) {
		row := make(map[string]any)
		for _, c := range want.Flatten() {
			row[c.Name] = c.Value
		}
		got, err := ReportFromColumns(row)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("text cells", func(t *testing.T) {
		row := make(map[string]any)
		for _, c := range want.Flatten() {
			if c.Value == nil {
				row[c.Name] = ""
				continue
			}
			row[c.Name] = fmt.Sprint(c.Value)
		}
		got, err := ReportFromColumns(row)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestReportFromColumns_Errors(t *testing.T) {
	_, err := ReportFromColumns(map[string]any{})
	assert.ErrorContains(t, err, "member_id")

	_, err = ReportFromColumns(map[string]any{"member_id": "A", "AVG_POINTS_BOUGHT": "abc"})
	assert.ErrorContains(t, err, "AVG_POINTS_BOUGHT")

	_, err = ReportFromColumns(map[string]any{"member_id": "A", "run_id": "not-a-uuid"})
	assert.ErrorContains(t, err, "run_id")
}

func TestReport_JSON(t *testing.T) {
	data, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "5D72524D", decoded["member_id"])
	assert.Nil(t, decoded["predict_resp_ep"])
	latencies := decoded["latencies"].(map[string]any)
	assert.InDelta(t, 0.1, latencies["prediction_ats_ep_latency"], 1e-9)
	assert.Len(t, latencies, 13)
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	loadErr := &LoadError{Source: "file.csv", Err: cause}
	assert.ErrorIs(t, loadErr, ErrLoad)
	assert.ErrorIs(t, loadErr, cause)

	tsErr := &TimestampParseError{MemberID: "A", Value: "yesterday", Err: cause}
	assert.ErrorIs(t, tsErr, ErrTimestampParse)
	assert.Contains(t, tsErr.Error(), "yesterday")

	statusErr := &RemoteCallError{Endpoint: "/ml/ats/predict", StatusCode: 503, Body: "down"}
	assert.ErrorIs(t, statusErr, ErrRemoteCall)
	assert.Equal(t, "/ml/ats/predict: status 503: down", statusErr.Error())

	transportErr := &RemoteCallError{Endpoint: "/offer/assign", Err: cause}
	assert.ErrorIs(t, transportErr, ErrRemoteCall)
	assert.ErrorIs(t, transportErr, cause)

	var target *RemoteCallError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", statusErr), &target)
	assert.Equal(t, 503, target.StatusCode)
}
