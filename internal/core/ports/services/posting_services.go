package services

import (
	"context"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

// PostingSvc turns business events into balanced journal entries using the
// tenant's role-mapped accounts. Posting is best-effort relative to the
// calling record: a missing account mapping surfaces as
// apperrors.ErrConfiguration without undoing the stock or payment side.
type PostingSvc interface {
	PostPurchaseReceipt(ctx context.Context, tenantID string, req dto.PurchaseReceiptEvent, userID string) (*domain.JournalEntry, error)
	PostPurchasePayment(ctx context.Context, tenantID string, req dto.PurchasePaymentEvent, userID string) (*domain.JournalEntry, error)
	PostSaleInvoice(ctx context.Context, tenantID string, req dto.SaleInvoiceEvent, userID string) ([]domain.JournalEntry, error)
	PostSalePayment(ctx context.Context, tenantID string, req dto.SalePaymentEvent, userID string) (*domain.JournalEntry, error)
	PostOperationalExpense(ctx context.Context, tenantID string, req dto.OperationalExpenseEvent, userID string) (*domain.JournalEntry, error)
	PostCompositionUsage(ctx context.Context, tenantID string, req dto.CompositionUsageEvent, userID string) (*domain.JournalEntry, error)
	RevertCompositionUsage(ctx context.Context, tenantID string, req dto.UsageReversalEvent, userID string) error

	// ReplayEvent re-posts the journal side of a logged event during a
	// ledger rebuild. Stock is left untouched and the event log is not
	// appended to. Returns the number of entries posted.
	ReplayEvent(ctx context.Context, tenantID string, event domain.PostedEvent) (int, error)
}
