package domain

import "time"

// DateLayout is the canonical day key used by the balance chains.
const DateLayout = "2006-01-02"

// DateKey collapses a timestamp to its calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// EggStockLevels holds egg counts per grade at one point in the chain.
type EggStockLevels struct {
	Table  int64 `json:"table"`
	Jumbo  int64 `json:"jumbo"`
	GradeC int64 `json:"gradeC"`
}

// Add returns the component-wise sum.
func (s EggStockLevels) Add(o EggStockLevels) EggStockLevels {
	return EggStockLevels{
		Table:  s.Table + o.Table,
		Jumbo:  s.Jumbo + o.Jumbo,
		GradeC: s.GradeC + o.GradeC,
	}
}

// EggRoomReport is one day of the per-tenant egg stock chain. Opening values
// are derived from the previous day's closing and rewritten by propagation
// whenever an upstream day changes; closings are always computed, never stored.
type EggRoomReport struct {
	TenantID   string    `json:"tenantID"`
	ReportDate time.Time `json:"reportDate"`

	TableOpening  int64 `json:"tableOpening"`
	TableReceived int64 `json:"tableReceived"`
	TableTransfer int64 `json:"tableTransfer"`
	TableDamage   int64 `json:"tableDamage"`
	TableOut      int64 `json:"tableOut"`

	JumboOpening  int64 `json:"jumboOpening"`
	JumboReceived int64 `json:"jumboReceived"`
	JumboTransfer int64 `json:"jumboTransfer"`
	JumboWaste    int64 `json:"jumboWaste"`
	JumboIn       int64 `json:"jumboIn"`

	GradeCOpening      int64 `json:"gradeCOpening"`
	GradeCShedReceived int64 `json:"gradeCShedReceived"`
	GradeCRoomReceived int64 `json:"gradeCRoomReceived"`
	GradeCTransfer     int64 `json:"gradeCTransfer"`
	GradeCLabour       int64 `json:"gradeCLabour"`
	GradeCWaste        int64 `json:"gradeCWaste"`

	Version int64 `json:"-"`
	AuditFields
}

// TableClosing derives the end-of-day table egg stock.
func (r EggRoomReport) TableClosing() int64 {
	return r.TableOpening + r.TableReceived - r.TableTransfer - r.TableDamage - r.TableOut
}

// JumboClosing derives the end-of-day jumbo egg stock.
func (r EggRoomReport) JumboClosing() int64 {
	return r.JumboOpening + r.JumboReceived - r.JumboTransfer - r.JumboWaste + r.JumboIn
}

// GradeCClosing derives the end-of-day grade C egg stock.
func (r EggRoomReport) GradeCClosing() int64 {
	return r.GradeCOpening + r.GradeCShedReceived + r.GradeCRoomReceived -
		r.GradeCTransfer - r.GradeCLabour - r.GradeCWaste
}

// Opening returns the stored opening levels for all grades.
func (r EggRoomReport) Opening() EggStockLevels {
	return EggStockLevels{Table: r.TableOpening, Jumbo: r.JumboOpening, GradeC: r.GradeCOpening}
}

// Closing returns the derived closing levels for all grades.
func (r EggRoomReport) Closing() EggStockLevels {
	return EggStockLevels{Table: r.TableClosing(), Jumbo: r.JumboClosing(), GradeC: r.GradeCClosing()}
}

// SetOpening overwrites the stored opening levels.
func (r *EggRoomReport) SetOpening(levels EggStockLevels) {
	r.TableOpening = levels.Table
	r.JumboOpening = levels.Jumbo
	r.GradeCOpening = levels.GradeC
}

// EggChainBaseline is the fallback seed when no report precedes the
// propagation window: the tenant's configured opening stock, with zero
// stock for any day before the configured opening date.
type EggChainBaseline struct {
	Opening     EggStockLevels
	OpeningDate *time.Time
}

// SeedFor resolves the baseline seed for a chain starting at day.
func (b EggChainBaseline) SeedFor(day time.Time) EggStockLevels {
	if b.OpeningDate != nil && day.Before(*b.OpeningDate) {
		return EggStockLevels{}
	}
	return b.Opening
}

// PropagateEggChain walks the egg stock chain from the first date in the
// window through the last, in date order. For each day the shed-received
// inflows are overwritten from produced, the authoritative per-day
// production sums, since upstream edits may have changed them; the opening is
// overwritten with the running seed, and the derived closing becomes the
// seed for the next day. Days with no report are never fabricated: the
// balance is carried forward as seed + production, assuming zero outflow.
//
// reports must be sorted by date ascending and lie within [from, through].
// The returned slice holds the rewritten reports in the same order; the
// final seed (the chain's closing as of through) is returned alongside.
func PropagateEggChain(
	seed EggStockLevels,
	from, through time.Time,
	reports []EggRoomReport,
	produced map[string]EggStockLevels,
) ([]EggRoomReport, EggStockLevels) {
	byDate := make(map[string]int, len(reports))
	for i := range reports {
		byDate[DateKey(reports[i].ReportDate)] = i
	}

	out := make([]EggRoomReport, len(reports))
	copy(out, reports)

	for day := from; !day.After(through); day = day.AddDate(0, 0, 1) {
		key := DateKey(day)
		prod := produced[key]
		idx, ok := byDate[key]
		if !ok {
			// Gap day: carry the balance forward, do not fabricate a record.
			seed = seed.Add(prod)
			continue
		}
		r := &out[idx]
		r.SetOpening(seed)
		r.TableReceived = prod.Table
		r.JumboReceived = prod.Jumbo
		r.GradeCShedReceived = prod.GradeC
		seed = r.Closing()
	}
	return out, seed
}
