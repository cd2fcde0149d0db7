package domain

import "github.com/shopspring/decimal"

// QuantityPrecision is the decimal precision for physical quantities (kg etc).
const QuantityPrecision = 3

// MoneyPrecision is the decimal precision for currency amounts.
const MoneyPrecision = 2

// InventoryItem is a cost-bearing stock item valued at a moving weighted
// average cost. AverageCost is mutated only by stock-increasing receipts;
// sales, usage and reversals consume or restore stock at the existing
// average, preserving moving-average semantics.
type InventoryItem struct {
	ItemID       string          `json:"itemID"`
	TenantID     string          `json:"tenantID"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`     // "kg", "ton", "units"
	Category     string          `json:"category"` // "Feed", "Medicine", ...
	CurrentStock decimal.Decimal `json:"currentStock"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Version      int64           `json:"-"` // optimistic concurrency token
	AuditFields
}

// EggItemNames are the inventory items whose cost is recognized through feed
// composition usage, not through sale-time COGS postings.
var EggItemNames = map[string]struct{}{
	"Table Egg":   {},
	"Jumbo Egg":   {},
	"Grade C Egg": {},
}

// IsEggItem reports whether the named item is an egg grade.
func IsEggItem(name string) bool {
	_, ok := EggItemNames[name]
	return ok
}

// NextAverageCost computes the moving weighted-average unit cost after
// receiving addedQty at unitCost into currentStock held at avgCost.
// When the receipt is non-positive, or would leave total stock non-positive,
// the average is unchanged. The result is rounded to quantity precision.
//
// Averaging is not invertible: a reversed receipt must be handled as a
// separate stock decrease at the prevailing average, never by "undoing"
// this formula.
func NextAverageCost(currentStock, avgCost, addedQty, unitCost decimal.Decimal) decimal.Decimal {
	if addedQty.LessThanOrEqual(decimal.Zero) {
		return avgCost
	}
	newStock := currentStock.Add(addedQty)
	if newStock.LessThanOrEqual(decimal.Zero) {
		return avgCost
	}
	existingValue := currentStock.Mul(avgCost)
	addedValue := addedQty.Mul(unitCost)
	return existingValue.Add(addedValue).DivRound(newStock, QuantityPrecision)
}

// StockChangeType labels the business reason for a stock mutation.
type StockChangeType string

const (
	StockChangePurchase       StockChangeType = "purchase_receipt"
	StockChangeSale           StockChangeType = "sale"
	StockChangeUsage          StockChangeType = "composition_usage"
	StockChangeUsageReversal  StockChangeType = "composition_revert"
	StockChangeReceiptRemoval StockChangeType = "receipt_removal"
	StockChangeAdjustment     StockChangeType = "manual_adjustment"
)
