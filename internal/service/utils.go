package service

import (
	"github.com/shopspring/decimal"
)

// round2 rounds to two decimal places, half away from zero, on the shortest
// decimal form of v. 2.675 therefore rounds to 2.68.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
