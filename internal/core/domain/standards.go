package domain

import "github.com/shopspring/decimal"

// PerformanceStandard is one week of a breed reference curve (Bovans white
// layer): the expected hen-day percentage and feed intake for flocks of
// that age. Tenants may load their own curves; lookups are by whole week.
type PerformanceStandard struct {
	StandardID       string          `json:"standardID"`
	TenantID         string          `json:"tenantID"`
	AgeWeeks         int             `json:"ageWeeks"`
	HenDayPercent    decimal.Decimal `json:"henDayPercent"`
	FeedGramsPerBird decimal.Decimal `json:"feedGramsPerBird"`
}

// StandardCurve is a tenant's full reference curve indexed by week.
type StandardCurve map[int]PerformanceStandard

// HenDayAt returns the expected hen-day percentage for a flock age, zero
// when the curve has no entry for that week.
func (c StandardCurve) HenDayAt(age decimal.Decimal) decimal.Decimal {
	std, ok := c[AgeWeeks(age)]
	if !ok {
		return decimal.Zero
	}
	return std.HenDayPercent
}

// FeedKgFor returns the expected feed for birdCount birds at age, in kg.
func (c StandardCurve) FeedKgFor(age decimal.Decimal, birdCount int64) decimal.Decimal {
	std, ok := c[AgeWeeks(age)]
	if !ok {
		return decimal.Zero
	}
	return std.FeedGramsPerBird.
		Mul(decimal.NewFromInt(birdCount)).
		DivRound(decimal.NewFromInt(1000), QuantityPrecision)
}
