package models

import "time"

// Feature keys as sent to the scoring services.
const (
	FeatureAvgPointsBought          = "AVG_POINTS_BOUGHT"
	FeatureAvgRevenueUSD            = "AVG_REVENUE_USD"
	FeatureLast3AvgPointsBought     = "LAST_3_TRANSACTIONS_AVG_POINTS_BOUGHT"
	FeatureLast3AvgRevenueUSD       = "LAST_3_TRANSACTIONS_AVG_REVENUE_USD"
	FeaturePctBuyTransactions       = "PCT_BUY_TRANSACTIONS"
	FeaturePctGiftTransactions      = "PCT_GIFT_TRANSACTIONS"
	FeaturePctRedeemTransactions    = "PCT_REDEEM_TRANSACTIONS"
	FeatureDaysSinceLastTransaction = "DAYS_SINCE_LAST_TRANSACTION"
)

// MemberFeatures is the fixed feature record of one member. The zero value
// is the record default used when a statistic has no data.
type MemberFeatures struct {
	AvgPointsBought          float64 `json:"AVG_POINTS_BOUGHT"`
	AvgRevenueUSD            float64 `json:"AVG_REVENUE_USD"`
	Last3AvgPointsBought     float64 `json:"LAST_3_TRANSACTIONS_AVG_POINTS_BOUGHT"`
	Last3AvgRevenueUSD       float64 `json:"LAST_3_TRANSACTIONS_AVG_REVENUE_USD"`
	PctBuyTransactions       float64 `json:"PCT_BUY_TRANSACTIONS"`
	PctGiftTransactions      float64 `json:"PCT_GIFT_TRANSACTIONS"`
	PctRedeemTransactions    float64 `json:"PCT_REDEEM_TRANSACTIONS"`
	DaysSinceLastTransaction int     `json:"DAYS_SINCE_LAST_TRANSACTION"`
}

// Column is one named cell of a flattened row. A nil Value is an absent cell.
type Column struct {
	Name  string
	Value any
}

func (f MemberFeatures) Columns() []Column {
	return []Column{
		{FeatureAvgPointsBought, f.AvgPointsBought},
		{FeatureAvgRevenueUSD, f.AvgRevenueUSD},
		{FeatureLast3AvgPointsBought, f.Last3AvgPointsBought},
		{FeatureLast3AvgRevenueUSD, f.Last3AvgRevenueUSD},
		{FeaturePctBuyTransactions, f.PctBuyTransactions},
		{FeaturePctGiftTransactions, f.PctGiftTransactions},
		{FeaturePctRedeemTransactions, f.PctRedeemTransactions},
		{FeatureDaysSinceLastTransaction, f.DaysSinceLastTransaction},
	}
}

// FeatureTimings holds the time spent computing each feature.
type FeatureTimings struct {
	Total                    time.Duration
	AvgPointsBought          time.Duration
	AvgRevenueUSD            time.Duration
	Last3AvgPointsBought     time.Duration
	Last3AvgRevenueUSD       time.Duration
	PctBuyTransactions       time.Duration
	PctGiftTransactions      time.Duration
	PctRedeemTransactions    time.Duration
	DaysSinceLastTransaction time.Duration
}

func (t FeatureTimings) Columns(prefix string) []Column {
	return []Column{
		{prefix + "transform_features_latency", t.Total.Seconds()},
		{prefix + "avg_points_bought_latency", t.AvgPointsBought.Seconds()},
		{prefix + "avg_revenue_usd_latency", t.AvgRevenueUSD.Seconds()},
		{prefix + "last_3_transactions_avg_points_bought_latency", t.Last3AvgPointsBought.Seconds()},
		{prefix + "last_3_transactions_avg_revenue_usd_latency", t.Last3AvgRevenueUSD.Seconds()},
		{prefix + "pct_buy_transactions_latency", t.PctBuyTransactions.Seconds()},
		{prefix + "pct_gift_transactions_latency", t.PctGiftTransactions.Seconds()},
		{prefix + "pct_redeem_transactions_latency", t.PctRedeemTransactions.Seconds()},
		{prefix + "days_since_last_transaction_latency", t.DaysSinceLastTransaction.Seconds()},
	}
}
