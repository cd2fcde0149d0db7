package domain

import "time"

// EventType identifies a business event that produces a journal posting.
type EventType string

const (
	EventPurchaseReceipt    EventType = "PURCHASE_RECEIPT"
	EventPurchasePayment    EventType = "PURCHASE_PAYMENT"
	EventSaleInvoice        EventType = "SALE_INVOICE"
	EventSalePayment        EventType = "SALE_PAYMENT"
	EventOperationalExpense EventType = "OPERATIONAL_EXPENSE"
	EventCompositionUsage   EventType = "COMPOSITION_USAGE"
	EventUsageReversal      EventType = "USAGE_REVERSAL"
)

// PostedEvent is the durable record of a business event handed to the poster.
// The payload keeps the original request verbatim so the ledger can be
// rebuilt by replaying events in order.
type PostedEvent struct {
	EventID    string
	TenantID   string
	EventType  EventType
	Reference  string
	OccurredAt time.Time
	Payload    []byte
	CreatedAt  time.Time
	CreatedBy  string
}

// RebuildSummary reports the outcome of a ledger rebuild.
type RebuildSummary struct {
	EntriesDeleted int
	EventsReplayed int
	EntriesPosted  int
	Skipped        int
}
