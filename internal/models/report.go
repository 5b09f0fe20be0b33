package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Prediction is the pair of scores sent to the offer service. A nil score
// marks a failed scoring call.
type Prediction struct {
	ATSPrediction  *float64 `json:"ats_prediction"`
	RespPrediction *float64 `json:"resp_prediction"`
}

// Latencies are the measured durations of one summarize run.
type Latencies struct {
	ReadData        time.Duration
	MemberFeatures  FeatureTimings
	PredictionATS   time.Duration
	PredictionResp  time.Duration
	OfferAssignment time.Duration
}

func (l Latencies) Columns() []Column {
	cols := []Column{{"read_data_latency", l.ReadData.Seconds()}}
	cols = append(cols, l.MemberFeatures.Columns("member_features_latency_")...)
	return append(cols,
		Column{"prediction_ats_ep_latency", l.PredictionATS.Seconds()},
		Column{"prediction_resp_ep_latency", l.PredictionResp.Seconds()},
		Column{"offer_ep_latency", l.OfferAssignment.Seconds()},
	)
}

// MarshalJSON encodes latencies as seconds keyed by their flattened names.
func (l Latencies) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64)
	for _, c := range l.Columns() {
		out[c.Name] = c.Value.(float64)
	}
	return json.Marshal(out)
}

// Report is the outcome of scoring one member.
type Report struct {
	RunID          uuid.UUID      `json:"run_id"`
	MemberID       string         `json:"member_id"`
	Features       MemberFeatures `json:"member_features"`
	ATSPrediction  *float64       `json:"predict_ats_ep"`
	RespPrediction *float64       `json:"predict_resp_ep"`
	Offer          *string        `json:"offer_ep"`
	Latencies      Latencies      `json:"latencies"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Flatten returns the report as one ordered row. Absent scores and offers
// become nil cells.
func (r *Report) Flatten() []Column {
	cols := []Column{{"member_id", r.MemberID}}
	cols = append(cols, r.Features.Columns()...)
	cols = append(cols,
		Column{"predict_ats_ep", floatOrNil(r.ATSPrediction)},
		Column{"predict_resp_ep", floatOrNil(r.RespPrediction)},
		Column{"offer_ep", stringOrNil(r.Offer)},
	)
	cols = append(cols, r.Latencies.Columns()...)
	return append(cols, Column{"run_id", r.RunID.String()})
}

// ColumnNames returns the flattened column names in row order.
func ColumnNames() []string {
	cols := (&Report{}).Flatten()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringOrNil(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
