package domain

import "github.com/shopspring/decimal"

// Tier is a coarse bucket of transaction size used for commission reporting.
type Tier string

const (
	Tier1        Tier = "Tier 1"
	Tier2        Tier = "Tier 2"
	Tier3        Tier = "Tier 3"
	BelowTier3   Tier = "Below Tier 3"
	Unclassified Tier = "Unclassified" // Total loan amount absent
)

var (
	tier1Threshold = decimal.NewFromInt(100000)
	tier2Threshold = decimal.NewFromInt(50000)
	tier3Threshold = decimal.NewFromInt(10000)
)

// ClassifyTier assigns exactly one tier to an amount. Thresholds are exclusive
// and evaluated from the largest down.
func ClassifyTier(amount decimal.NullDecimal) Tier {
	if !amount.Valid {
		return Unclassified
	}
	switch {
	case amount.Decimal.GreaterThan(tier1Threshold):
		return Tier1
	case amount.Decimal.GreaterThan(tier2Threshold):
		return Tier2
	case amount.Decimal.GreaterThan(tier3Threshold):
		return Tier3
	default:
		return BelowTier3
	}
}
