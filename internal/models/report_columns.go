package models

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReportFromColumns rebuilds a report from a flattened row keyed by column
// name. Cells may hold numbers or their text form; empty text and nil are
// absent values.
func ReportFromColumns(row map[string]any) (*Report, error) {
	var (
		r   Report
		err error
	)

	r.MemberID = cellString(row["member_id"])
	if r.MemberID == "" {
		return nil, fmt.Errorf("row has no member_id")
	}

	if id := cellString(row["run_id"]); id != "" {
		if r.RunID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run_id: %w", err)
		}
	}

	floats := map[string]*float64{
		FeatureAvgPointsBought:       &r.Features.AvgPointsBought,
		FeatureAvgRevenueUSD:         &r.Features.AvgRevenueUSD,
		FeatureLast3AvgPointsBought:  &r.Features.Last3AvgPointsBought,
		FeatureLast3AvgRevenueUSD:    &r.Features.Last3AvgRevenueUSD,
		FeaturePctBuyTransactions:    &r.Features.PctBuyTransactions,
		FeaturePctGiftTransactions:   &r.Features.PctGiftTransactions,
		FeaturePctRedeemTransactions: &r.Features.PctRedeemTransactions,
	}
	for name, dst := range floats {
		v, err := cellFloat(row[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if v != nil {
			*dst = *v
		}
	}

	days, err := cellFloat(row[FeatureDaysSinceLastTransaction])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureDaysSinceLastTransaction, err)
	}
	if days != nil {
		r.Features.DaysSinceLastTransaction = int(*days)
	}

	if r.ATSPrediction, err = cellFloat(row["predict_ats_ep"]); err != nil {
		return nil, fmt.Errorf("predict_ats_ep: %w", err)
	}
	if r.RespPrediction, err = cellFloat(row["predict_resp_ep"]); err != nil {
		return nil, fmt.Errorf("predict_resp_ep: %w", err)
	}
	if offer := cellString(row["offer_ep"]); offer != "" {
		r.Offer = &offer
	}

	durations := map[string]*time.Duration{
		"read_data_latency":          &r.Latencies.ReadData,
		"prediction_ats_ep_latency":  &r.Latencies.PredictionATS,
		"prediction_resp_ep_latency": &r.Latencies.PredictionResp,
		"offer_ep_latency":           &r.Latencies.OfferAssignment,
	}
	ft := &r.Latencies.MemberFeatures
	featureDurations := []*time.Duration{
		&ft.Total, &ft.AvgPointsBought, &ft.AvgRevenueUSD, &ft.Last3AvgPointsBought,
		&ft.Last3AvgRevenueUSD, &ft.PctBuyTransactions, &ft.PctGiftTransactions,
		&ft.PctRedeemTransactions, &ft.DaysSinceLastTransaction,
	}
	for i, c := range ft.Columns("member_features_latency_") {
		durations[c.Name] = featureDurations[i]
	}
	for name, dst := range durations {
		v, err := cellFloat(row[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if v != nil {
			*dst = time.Duration(math.Round(*v * float64(time.Second)))
		}
	}

	return &r, nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return fmt.Sprint(t)
	}
}

func cellFloat(v any) (*float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &t, nil
	case *float64:
		return t, nil
	case int:
		f := float64(t)
		return &f, nil
	case int32:
		f := float64(t)
		return &f, nil
	case int64:
		f := float64(t)
		return &f, nil
	case string:
		if t == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, err
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("unsupported cell type %T", v)
	}
}
