package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	ageStep     = decimal.RequireFromString("0.1")
	ageWeekRoll = decimal.RequireFromString("0.4")
	ageDaySeven = decimal.RequireFromString("0.7")
	one         = decimal.NewFromInt(1)
)

// AdvanceAge advances a flock age by the given number of calendar days.
//
// Age is stored as week.day with the day digit in [1,7]. A normal day adds
// 0.1; when the fractional part is exactly .7 (day 7) the step adds 0.4,
// rolling X.7 into (X+1).1 and skipping .8/.9. The rule is non-linear in
// the fractional part, so N days apply it N times; the value is rounded to
// one decimal after each step to keep the representation exact.
func AdvanceAge(age decimal.Decimal, days int) decimal.Decimal {
	current := age.Round(1)
	for i := 0; i < days; i++ {
		frac := current.Mod(one).Round(1)
		if frac.Equal(ageDaySeven) {
			current = current.Add(ageWeekRoll)
		} else {
			current = current.Add(ageStep)
		}
		current = current.Round(1)
	}
	return current
}

// ValidAge reports whether age is a well-formed week.day value: at most one
// decimal place with the day digit in [1,7].
func ValidAge(age decimal.Decimal) bool {
	if age.Exponent() < -1 || age.IsNegative() {
		return false
	}
	frac := age.Mod(one).Round(1)
	return frac.GreaterThanOrEqual(ageStep) && frac.LessThanOrEqual(ageDaySeven)
}

// AgeWeeks returns the whole-week component of an age.
func AgeWeeks(age decimal.Decimal) int {
	return int(age.IntPart())
}

// BatchType buckets a flock by age for reporting and standards lookup.
type BatchType string

const (
	BatchChick  BatchType = "Chick"
	BatchGrower BatchType = "Grower"
	BatchLayer  BatchType = "Layer"
)

// BatchTypeForAge classifies a flock: chicks to week 8, growers to week 17,
// layers beyond.
func BatchTypeForAge(age decimal.Decimal) BatchType {
	weeks := AgeWeeks(age)
	switch {
	case weeks <= 8:
		return BatchChick
	case weeks <= 17:
		return BatchGrower
	default:
		return BatchLayer
	}
}

// Batch is a flock of birds housed in one shed. Its live counters are reset
// each day by the end-of-day snapshot, which materializes a DailyBatchRow.
type Batch struct {
	BatchID      string          `json:"batchID"`
	TenantID     string          `json:"tenantID"`
	ShedNo       int             `json:"shedNo"`
	BatchNo      string          `json:"batchNo"`
	StartDate    time.Time       `json:"startDate"`
	Age          decimal.Decimal `json:"age"` // week.day at StartDate's chain head
	OpeningCount int64           `json:"openingCount"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// DailyBatchRow is one day of a batch's bird-count chain. OpeningCount and
// Age are derived from the previous day and rewritten by propagation when
// an upstream day changes; ClosingCount is always computed, never stored.
type DailyBatchRow struct {
	BatchID   string          `json:"batchID"`
	TenantID  string          `json:"tenantID"`
	ShedNo    int             `json:"shedNo"`
	BatchNo   string          `json:"batchNo"`
	BatchDate time.Time       `json:"batchDate"`
	Age       decimal.Decimal `json:"age"`

	OpeningCount int64 `json:"openingCount"`
	Mortality    int64 `json:"mortality"`
	Culls        int64 `json:"culls"`

	TableEggs int64 `json:"tableEggs"`
	Jumbo     int64 `json:"jumbo"`
	CR        int64 `json:"cr"`

	Version int64 `json:"-"`
	AuditFields
}

// ClosingCount derives the end-of-day bird count.
func (r DailyBatchRow) ClosingCount() int64 {
	return r.OpeningCount - r.Mortality - r.Culls
}

// TotalEggs sums all egg grades produced on the day.
func (r DailyBatchRow) TotalEggs() int64 {
	return r.TableEggs + r.Jumbo + r.CR
}

// HenDayPercent is eggs laid per bird housed, as a percentage.
func (r DailyBatchRow) HenDayPercent() decimal.Decimal {
	if r.OpeningCount <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(r.TotalEggs()).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(r.OpeningCount), 2)
}

// Production returns the day's output as egg room inflow levels.
func (r DailyBatchRow) Production() EggStockLevels {
	return EggStockLevels{Table: r.TableEggs, Jumbo: r.Jumbo, GradeC: r.CR}
}

// FlockSeed is the state the next day of a bird-count chain derives from.
type FlockSeed struct {
	Date    time.Time
	Closing int64
	Age     decimal.Decimal
}

// SeedFromBatch builds the chain seed for a batch with no prior daily rows.
func SeedFromBatch(b Batch) FlockSeed {
	return FlockSeed{Date: b.StartDate, Closing: b.OpeningCount, Age: b.Age}
}

// SeedFromRow builds the chain seed from the most recent prior daily row.
func SeedFromRow(r DailyBatchRow) FlockSeed {
	return FlockSeed{Date: r.BatchDate, Closing: r.ClosingCount(), Age: r.Age}
}

// Derive computes the opening count and age for a row dated day, bridging
// any date gap by advancing the age once per elapsed calendar day. The
// count carries over unchanged across gaps: days without a report record
// no mortality or culls.
func (s FlockSeed) Derive(day time.Time) (opening int64, age decimal.Decimal) {
	days := DaysBetween(s.Date, day)
	return s.Closing, AdvanceAge(s.Age, days)
}

// PropagateFlockChain rewrites the opening count and age of each subsequent
// row from the seed, in date order. Each row's derived closing and age
// become the seed for the next row. rows must be sorted by date ascending
// and all dated after seed.Date. The rewritten rows are returned.
func PropagateFlockChain(seed FlockSeed, rows []DailyBatchRow) []DailyBatchRow {
	out := make([]DailyBatchRow, len(rows))
	copy(out, rows)
	for i := range out {
		opening, age := seed.Derive(out[i].BatchDate)
		out[i].OpeningCount = opening
		out[i].Age = age
		seed = SeedFromRow(out[i])
	}
	return out
}

// DaysBetween counts whole calendar days from a to b, ignoring clock time.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
