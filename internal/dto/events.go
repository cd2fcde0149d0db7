package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLine is one received line of a purchase order.
type PurchaseLine struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unitCost" binding:"required"`
}

// PurchaseReceiptEvent reports goods received against a purchase order.
// Stock is added first; the posting debits inventory for the received value.
type PurchaseReceiptEvent struct {
	OrderNumber string         `json:"orderNumber" binding:"required"`
	Date        time.Time      `json:"date" binding:"required" time_format:"2006-01-02"`
	Lines       []PurchaseLine `json:"lines" binding:"required,min=1,dive"`
}

// PurchasePaymentEvent reports a payment made against a purchase order.
type PurchasePaymentEvent struct {
	OrderNumber string          `json:"orderNumber" binding:"required"`
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// SaleLine is one invoiced line of a sales order.
type SaleLine struct {
	ItemID    string          `json:"itemID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// SaleInvoiceEvent reports an invoiced sale. Besides the revenue entry,
// non-egg lines relieve inventory at average cost through a second entry.
type SaleInvoiceEvent struct {
	OrderNumber string     `json:"orderNumber" binding:"required"`
	Date        time.Time  `json:"date" binding:"required" time_format:"2006-01-02"`
	Lines       []SaleLine `json:"lines" binding:"required,min=1,dive"`
}

// SalePaymentEvent reports cash collected against a sales order.
type SalePaymentEvent struct {
	OrderNumber string          `json:"orderNumber" binding:"required"`
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// OperationalExpenseEvent reports a paid operating expense. The debit side
// resolves to the expense account whose name matches the expense type,
// falling back to the default operational expense account.
type OperationalExpenseEvent struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	ExpenseType string          `json:"expenseType" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// UsageLine is one consumed line of a composition usage.
type UsageLine struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// CompositionUsageEvent reports feed mix consumption. Times multiplies
// every line quantity.
type CompositionUsageEvent struct {
	UsageID string      `json:"usageID" binding:"required"`
	Date    time.Time   `json:"date" binding:"required" time_format:"2006-01-02"`
	Times   int         `json:"times" binding:"omitempty,min=1"`
	Lines   []UsageLine `json:"lines" binding:"required,min=1,dive"`
}

// UsageReversalEvent undoes a composition usage. Stock goes back at the
// current average cost; no reversing journal entry is posted.
type UsageReversalEvent struct {
	UsageID string      `json:"usageID" binding:"required"`
	Times   int         `json:"times" binding:"omitempty,min=1"`
	Lines   []UsageLine `json:"lines" binding:"required,min=1,dive"`
}
