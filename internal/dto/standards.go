package dto

import (
	"github.com/shopspring/decimal"
)

// SaveStandardRequest upserts one week of the breed performance curve.
type SaveStandardRequest struct {
	AgeWeeks         int             `json:"ageWeeks" binding:"required,min=1"`
	HenDayPercent    decimal.Decimal `json:"henDayPercent" binding:"required"`
	FeedGramsPerBird decimal.Decimal `json:"feedGramsPerBird" binding:"required"`
}

// ExpectedPerformance compares a batch day against the standard curve.
type ExpectedPerformance struct {
	BatchID        string          `json:"batchID"`
	Date           string          `json:"date"`
	AgeWeeks       int             `json:"ageWeeks"`
	StandardHenDay decimal.Decimal `json:"standardHenDayPercent"`
	ActualHenDay   decimal.Decimal `json:"actualHenDayPercent"`
	ExpectedFeedKg decimal.Decimal `json:"expectedFeedKg"`
	BirdCount      int64           `json:"birdCount"`
	BelowStandard  bool            `json:"belowStandard"`
}
