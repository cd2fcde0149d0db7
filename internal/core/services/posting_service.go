package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/rajabalanj/poultry-ledger/internal/utils/accounting"
)

// PostingService translates business events into journal entries using the
// tenant's role-mapped accounts. Stock moves first and commits regardless
// of the posting outcome; an unmapped account surfaces as
// apperrors.ErrConfiguration after the event is logged, so a later ledger
// rebuild can recover the posting.
type PostingService struct {
	journalSvc   portssvc.JournalWriterSvc
	settingsSvc  portssvc.SettingsSvc
	inventorySvc portssvc.InventorySvcFacade
	accountRepo  portsrepo.AccountRepository
	eventRepo    portsrepo.EventLogRepository
}

func NewPostingService(
	journalSvc portssvc.JournalWriterSvc,
	settingsSvc portssvc.SettingsSvc,
	inventorySvc portssvc.InventorySvcFacade,
	accountRepo portsrepo.AccountRepository,
	eventRepo portsrepo.EventLogRepository,
) *PostingService {
	return &PostingService{
		journalSvc:   journalSvc,
		settingsSvc:  settingsSvc,
		inventorySvc: inventorySvc,
		accountRepo:  accountRepo,
		eventRepo:    eventRepo,
	}
}

func (s *PostingService) PostPurchaseReceipt(ctx context.Context, tenantID string, req dto.PurchaseReceiptEvent, userID string) (*domain.JournalEntry, error) {
	reference := withPrefix("PO-", req.OrderNumber)
	s.logEvent(ctx, tenantID, domain.EventPurchaseReceipt, reference, req.Date, req, userID)

	for _, line := range req.Lines {
		_, err := s.inventorySvc.ReceiveStock(ctx, tenantID, dto.StockReceiptRequest{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			Reference: reference,
		}, userID)
		if err != nil {
			return nil, err
		}
	}

	return s.postPurchaseReceiptEntry(ctx, tenantID, req, userID)
}

func (s *PostingService) postPurchaseReceiptEntry(ctx context.Context, tenantID string, req dto.PurchaseReceiptEvent, userID string) (*domain.JournalEntry, error) {
	amount := decimal.Zero
	for _, line := range req.Lines {
		amount = amount.Add(accounting.RoundMoney(line.Quantity.Mul(line.UnitCost)))
	}

	inventory, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleInventory)
	if err != nil {
		return nil, err
	}
	payable, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}

	reference := withPrefix("PO-", req.OrderNumber)
	return s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("Goods received against %s", reference), reference,
		inventory.AccountID, payable.AccountID, amount, userID)
}

func (s *PostingService) PostPurchasePayment(ctx context.Context, tenantID string, req dto.PurchasePaymentEvent, userID string) (*domain.JournalEntry, error) {
	reference := withPrefix("PO-", req.OrderNumber)
	s.logEvent(ctx, tenantID, domain.EventPurchasePayment, reference, req.Date, req, userID)
	return s.postPurchasePaymentEntry(ctx, tenantID, req, userID)
}

func (s *PostingService) postPurchasePaymentEntry(ctx context.Context, tenantID string, req dto.PurchasePaymentEvent, userID string) (*domain.JournalEntry, error) {
	payable, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}
	cash, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleCash)
	if err != nil {
		return nil, err
	}

	reference := withPrefix("PO-", req.OrderNumber)
	return s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("Payment against %s", reference), reference,
		payable.AccountID, cash.AccountID, accounting.RoundMoney(req.Amount), userID)
}

// PostSaleInvoice posts the revenue entry, consumes the sold stock, and
// for non-egg lines posts a second entry relieving inventory at the
// current average cost. Egg cost flows through feed usage, so egg lines
// carry no sale-time cost entry.
func (s *PostingService) PostSaleInvoice(ctx context.Context, tenantID string, req dto.SaleInvoiceEvent, userID string) ([]domain.JournalEntry, error) {
	reference := withPrefix("SO-", req.OrderNumber)
	s.logEvent(ctx, tenantID, domain.EventSaleInvoice, reference, req.Date, req, userID)

	for _, line := range req.Lines {
		_, err := s.inventorySvc.ConsumeStock(ctx, tenantID, dto.StockConsumptionRequest{
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			ChangeType: string(domain.StockChangeSale),
			Reference:  reference,
		}, userID)
		if err != nil {
			return nil, err
		}
	}

	return s.postSaleInvoiceEntries(ctx, tenantID, req, userID)
}

func (s *PostingService) postSaleInvoiceEntries(ctx context.Context, tenantID string, req dto.SaleInvoiceEvent, userID string) ([]domain.JournalEntry, error) {
	receivable, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	sales, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleSales)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, line := range req.Lines {
		revenue = revenue.Add(accounting.RoundMoney(line.Quantity.Mul(line.UnitPrice)))
	}

	reference := withPrefix("SO-", req.OrderNumber)
	entries := make([]domain.JournalEntry, 0, 2)

	invoiceEntry, err := s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("Invoice %s", reference), reference,
		receivable.AccountID, sales.AccountID, revenue, userID)
	if err != nil {
		return nil, err
	}
	entries = append(entries, *invoiceEntry)

	cost, err := s.saleCost(ctx, tenantID, req.Lines)
	if err != nil {
		return entries, err
	}
	if cost.IsZero() {
		return entries, nil
	}

	cogs, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleCOGS)
	if err != nil {
		return entries, err
	}
	inventory, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleInventory)
	if err != nil {
		return entries, err
	}

	cogsEntry, err := s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("Cost of goods sold for %s", reference), reference,
		cogs.AccountID, inventory.AccountID, cost, userID)
	if err != nil {
		return entries, err
	}
	return append(entries, *cogsEntry), nil
}

// saleCost values the non-egg lines at the items' current average cost.
// The average may have moved since the sale; this is an accepted
// approximation of the cost at sale time.
func (s *PostingService) saleCost(ctx context.Context, tenantID string, lines []dto.SaleLine) (decimal.Decimal, error) {
	cost := decimal.Zero
	for _, line := range lines {
		item, err := s.inventorySvc.GetItemByID(ctx, tenantID, line.ItemID)
		if err != nil {
			return decimal.Zero, err
		}
		if domain.IsEggItem(item.Name) {
			continue
		}
		cost = cost.Add(accounting.RoundMoney(line.Quantity.Mul(item.AverageCost)))
	}
	return cost, nil
}

func (s *PostingService) PostSalePayment(ctx context.Context, tenantID string, req dto.SalePaymentEvent, userID string) (*domain.JournalEntry, error) {
	reference := withPrefix("SO-", req.OrderNumber)
	s.logEvent(ctx, tenantID, domain.EventSalePayment, reference, req.Date, req, userID)
	return s.postSalePaymentEntry(ctx, tenantID, req, userID)
}

func (s *PostingService) postSalePaymentEntry(ctx context.Context, tenantID string, req dto.SalePaymentEvent, userID string) (*domain.JournalEntry, error) {
	cash, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleCash)
	if err != nil {
		return nil, err
	}
	receivable, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}

	reference := withPrefix("SO-", req.OrderNumber)
	return s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("Payment received against %s", reference), reference,
		cash.AccountID, receivable.AccountID, accounting.RoundMoney(req.Amount), userID)
}

// PostOperationalExpense debits the expense account whose name matches the
// expense type, falling back to the default operational expense account.
func (s *PostingService) PostOperationalExpense(ctx context.Context, tenantID string, req dto.OperationalExpenseEvent, userID string) (*domain.JournalEntry, error) {
	reference := withPrefix("EXP-", req.ExpenseID)
	s.logEvent(ctx, tenantID, domain.EventOperationalExpense, reference, req.Date, req, userID)
	return s.postOperationalExpenseEntry(ctx, tenantID, req, userID)
}

func (s *PostingService) postOperationalExpenseEntry(ctx context.Context, tenantID string, req dto.OperationalExpenseEvent, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debitAccount, err := s.expenseAccountFor(ctx, tenantID, req.ExpenseType)
	if err != nil {
		return nil, err
	}
	cash, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleCash)
	if err != nil {
		return nil, err
	}

	logger.Debug("Resolved expense account",
		slog.String("expense_type", req.ExpenseType),
		slog.String("account_id", debitAccount.AccountID),
	)

	reference := withPrefix("EXP-", req.ExpenseID)
	return s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("%s expense", req.ExpenseType), reference,
		debitAccount.AccountID, cash.AccountID, accounting.RoundMoney(req.Amount), userID)
}

func (s *PostingService) expenseAccountFor(ctx context.Context, tenantID, expenseType string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, tenantID, expenseType)
	if err == nil && account.AccountType == domain.Expense {
		return account, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleOperationalExpense)
}

func (s *PostingService) PostCompositionUsage(ctx context.Context, tenantID string, req dto.CompositionUsageEvent, userID string) (*domain.JournalEntry, error) {
	reference := withPrefix("USAGE-", req.UsageID)
	s.logEvent(ctx, tenantID, domain.EventCompositionUsage, reference, req.Date, req, userID)

	times := timesOrOne(req.Times)
	for _, line := range req.Lines {
		_, err := s.inventorySvc.ConsumeStock(ctx, tenantID, dto.StockConsumptionRequest{
			ItemID:     line.ItemID,
			Quantity:   line.Quantity.Mul(decimal.NewFromInt(int64(times))),
			ChangeType: string(domain.StockChangeUsage),
			Reference:  reference,
		}, userID)
		if err != nil {
			return nil, err
		}
	}

	return s.postCompositionUsageEntry(ctx, tenantID, req, userID)
}

func (s *PostingService) postCompositionUsageEntry(ctx context.Context, tenantID string, req dto.CompositionUsageEvent, userID string) (*domain.JournalEntry, error) {
	times := decimal.NewFromInt(int64(timesOrOne(req.Times)))
	value := decimal.Zero
	for _, line := range req.Lines {
		item, err := s.inventorySvc.GetItemByID(ctx, tenantID, line.ItemID)
		if err != nil {
			return nil, err
		}
		value = value.Add(accounting.RoundMoney(line.Quantity.Mul(times).Mul(item.AverageCost)))
	}
	if value.IsZero() {
		return nil, nil
	}

	cogs, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleCOGS)
	if err != nil {
		return nil, err
	}
	inventory, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleInventory)
	if err != nil {
		return nil, err
	}

	reference := withPrefix("USAGE-", req.UsageID)
	return s.postPair(ctx, tenantID, req.Date,
		fmt.Sprintf("Feed composition usage %s", reference), reference,
		cogs.AccountID, inventory.AccountID, value, userID)
}

// RevertCompositionUsage puts the consumed stock back at the prevailing
// average cost. No reversing journal entry is posted; the ledger keeps the
// original usage and corrections are made through new entries.
func (s *PostingService) RevertCompositionUsage(ctx context.Context, tenantID string, req dto.UsageReversalEvent, userID string) error {
	reference := withPrefix("USAGE-", req.UsageID)
	s.logEvent(ctx, tenantID, domain.EventUsageReversal, reference, time.Now(), req, userID)

	times := timesOrOne(req.Times)
	for _, line := range req.Lines {
		_, err := s.inventorySvc.ReturnStock(ctx, tenantID, dto.StockReturnRequest{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity.Mul(decimal.NewFromInt(int64(times))),
			Reference: reference,
		}, userID)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReplayEvent re-posts the journal side of a logged event. Stock mutations
// already happened when the event was first handled, so only the entry is
// rebuilt. Sale and usage costs are valued at the current average cost.
func (s *PostingService) ReplayEvent(ctx context.Context, tenantID string, event domain.PostedEvent) (int, error) {
	switch event.EventType {
	case domain.EventPurchaseReceipt:
		var req dto.PurchaseReceiptEvent
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return 0, fmt.Errorf("decoding %s payload: %w", event.EventType, err)
		}
		_, err := s.postPurchaseReceiptEntry(ctx, tenantID, req, event.CreatedBy)
		return 1, err
	case domain.EventPurchasePayment:
		var req dto.PurchasePaymentEvent
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return 0, fmt.Errorf("decoding %s payload: %w", event.EventType, err)
		}
		_, err := s.postPurchasePaymentEntry(ctx, tenantID, req, event.CreatedBy)
		return 1, err
	case domain.EventSaleInvoice:
		var req dto.SaleInvoiceEvent
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return 0, fmt.Errorf("decoding %s payload: %w", event.EventType, err)
		}
		entries, err := s.postSaleInvoiceEntries(ctx, tenantID, req, event.CreatedBy)
		return len(entries), err
	case domain.EventSalePayment:
		var req dto.SalePaymentEvent
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return 0, fmt.Errorf("decoding %s payload: %w", event.EventType, err)
		}
		_, err := s.postSalePaymentEntry(ctx, tenantID, req, event.CreatedBy)
		return 1, err
	case domain.EventOperationalExpense:
		var req dto.OperationalExpenseEvent
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return 0, fmt.Errorf("decoding %s payload: %w", event.EventType, err)
		}
		_, err := s.postOperationalExpenseEntry(ctx, tenantID, req, event.CreatedBy)
		return 1, err
	case domain.EventCompositionUsage:
		var req dto.CompositionUsageEvent
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return 0, fmt.Errorf("decoding %s payload: %w", event.EventType, err)
		}
		entry, err := s.postCompositionUsageEntry(ctx, tenantID, req, event.CreatedBy)
		if entry == nil {
			return 0, err
		}
		return 1, err
	case domain.EventUsageReversal:
		// Stock-only event, nothing to post.
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown event type %q: %w", event.EventType, apperrors.ErrValidation)
	}
}

// postPair posts a two-line entry moving amount from the credit account to
// the debit account.
func (s *PostingService) postPair(ctx context.Context, tenantID string, date time.Time, description, reference, debitAccountID, creditAccountID string, amount decimal.Decimal, userID string) (*domain.JournalEntry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("posting amount must be positive: %w", apperrors.ErrValidation)
	}
	return s.journalSvc.CreateEntry(ctx, tenantID, dto.CreateJournalEntryRequest{
		EntryDate:         date,
		Description:       description,
		ReferenceDocument: reference,
		Items: []dto.JournalItemRequest{
			{AccountID: debitAccountID, Debit: amount},
			{AccountID: creditAccountID, Credit: amount},
		},
	}, userID)
}

func (s *PostingService) logEvent(ctx context.Context, tenantID string, eventType domain.EventType, reference string, occurredAt time.Time, payload any, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to encode event payload", slog.String("error", err.Error()), slog.String("event_type", string(eventType)))
		return
	}

	event := domain.PostedEvent{
		EventID:    uuid.NewString(),
		TenantID:   tenantID,
		EventType:  eventType,
		Reference:  reference,
		OccurredAt: occurredAt,
		Payload:    body,
		CreatedAt:  time.Now(),
		CreatedBy:  userID,
	}
	if err := s.eventRepo.AppendEvent(ctx, event); err != nil {
		logger.Warn("Failed to append event log record",
			slog.String("error", err.Error()),
			slog.String("event_type", string(eventType)),
			slog.String("reference", reference),
		)
	}
}

func withPrefix(prefix, id string) string {
	if strings.HasPrefix(id, prefix) {
		return id
	}
	return prefix + id
}

func timesOrOne(times int) int {
	if times < 1 {
		return 1
	}
	return times
}
