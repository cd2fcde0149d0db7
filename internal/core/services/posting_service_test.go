package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/core/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalSvc   *MockJournalWriterSvc
	mockSettingsSvc  *MockSettingsSvc
	mockInventorySvc *MockInventorySvc
	mockAccountRepo  *MockAccountRepository
	mockEventRepo    *MockEventLogRepository
	service          portssvc.PostingSvc
	ctx              context.Context
	tenantID         string
	userID           string
	date             time.Time
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockJournalSvc = new(MockJournalWriterSvc)
	s.mockSettingsSvc = new(MockSettingsSvc)
	s.mockInventorySvc = new(MockInventorySvc)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockEventRepo = new(MockEventLogRepository)
	s.service = services.NewPostingService(s.mockJournalSvc, s.mockSettingsSvc, s.mockInventorySvc, s.mockAccountRepo, s.mockEventRepo)
	s.ctx = context.Background()
	s.tenantID = "tenant-1"
	s.userID = "user-1"
	s.date = time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

func (s *PostingServiceTestSuite) roleAccount(role domain.AccountRole, accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:   "acct-" + string(role),
		TenantID:    s.tenantID,
		AccountType: accountType,
		IsActive:    true,
	}
}

func (s *PostingServiceTestSuite) expectRole(role domain.AccountRole, accountType domain.AccountType) *domain.Account {
	account := s.roleAccount(role, accountType)
	s.mockSettingsSvc.On("AccountForRole", s.ctx, s.tenantID, role).Return(account, nil)
	return account
}

func (s *PostingServiceTestSuite) expectEvent(eventType domain.EventType, reference string) {
	s.mockEventRepo.On("AppendEvent", s.ctx, mock.MatchedBy(func(event domain.PostedEvent) bool {
		return event.TenantID == s.tenantID &&
			event.EventType == eventType &&
			event.Reference == reference &&
			len(event.Payload) > 0
	})).Return(nil).Once()
}

func (s *PostingServiceTestSuite) stubEntry(entryID string) *domain.JournalEntry {
	return &domain.JournalEntry{EntryID: entryID, TenantID: s.tenantID}
}

func (s *PostingServiceTestSuite) TestPostPurchaseReceipt() {
	req := dto.PurchaseReceiptEvent{
		OrderNumber: "42",
		Date:        s.date,
		Lines: []dto.PurchaseLine{
			{ItemID: "item-feed", Quantity: decimal.NewFromInt(100), UnitCost: decimal.NewFromFloat(2.5)},
		},
	}

	s.expectEvent(domain.EventPurchaseReceipt, "PO-42")
	s.mockInventorySvc.On("ReceiveStock", s.ctx, s.tenantID, dto.StockReceiptRequest{
		ItemID:    "item-feed",
		Quantity:  decimal.NewFromInt(100),
		UnitCost:  decimal.NewFromFloat(2.5),
		Reference: "PO-42",
	}, s.userID).Return(&domain.InventoryItem{ItemID: "item-feed"}, nil).Once()
	inventory := s.expectRole(domain.RoleInventory, domain.Asset)
	payable := s.expectRole(domain.RoleAccountsPayable, domain.Liability)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.ReferenceDocument == "PO-42" &&
			len(req.Items) == 2 &&
			req.Items[0].AccountID == inventory.AccountID &&
			req.Items[0].Debit.Equal(decimal.NewFromInt(250)) &&
			req.Items[1].AccountID == payable.AccountID &&
			req.Items[1].Credit.Equal(decimal.NewFromInt(250))
	}), s.userID).Return(s.stubEntry("e1"), nil).Once()

	entry, err := s.service.PostPurchaseReceipt(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "e1", entry.EntryID)
	s.mockEventRepo.AssertExpectations(s.T())
	s.mockInventorySvc.AssertExpectations(s.T())
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostPurchaseReceipt_StockFailureSkipsEntry() {
	req := dto.PurchaseReceiptEvent{
		OrderNumber: "PO-42",
		Date:        s.date,
		Lines: []dto.PurchaseLine{
			{ItemID: "item-gone", Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(3)},
		},
	}

	s.expectEvent(domain.EventPurchaseReceipt, "PO-42")
	s.mockInventorySvc.On("ReceiveStock", s.ctx, s.tenantID, mock.Anything, s.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	entry, err := s.service.PostPurchaseReceipt(s.ctx, s.tenantID, req, s.userID)

	assert.Nil(s.T(), entry)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	// The event is logged before stock moves so a rebuild can recover it.
	s.mockEventRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostPurchasePayment() {
	req := dto.PurchasePaymentEvent{OrderNumber: "7", Date: s.date, Amount: decimal.NewFromInt(500)}

	s.expectEvent(domain.EventPurchasePayment, "PO-7")
	payable := s.expectRole(domain.RoleAccountsPayable, domain.Liability)
	cash := s.expectRole(domain.RoleCash, domain.Asset)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == payable.AccountID &&
			req.Items[1].AccountID == cash.AccountID &&
			req.Items[0].Debit.Equal(decimal.NewFromInt(500))
	}), s.userID).Return(s.stubEntry("e1"), nil).Once()

	entry, err := s.service.PostPurchasePayment(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), entry)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostSaleInvoice_EggLinesSkipCOGS() {
	req := dto.SaleInvoiceEvent{
		OrderNumber: "11",
		Date:        s.date,
		Lines: []dto.SaleLine{
			{ItemID: "item-egg", Quantity: decimal.NewFromInt(300), UnitPrice: decimal.NewFromFloat(0.5)},
		},
	}

	s.expectEvent(domain.EventSaleInvoice, "SO-11")
	s.mockInventorySvc.On("ConsumeStock", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.StockConsumptionRequest) bool {
		return req.ItemID == "item-egg" && req.ChangeType == string(domain.StockChangeSale)
	}), s.userID).Return(&domain.InventoryItem{ItemID: "item-egg"}, nil).Once()
	receivable := s.expectRole(domain.RoleAccountsReceivable, domain.Asset)
	s.expectRole(domain.RoleSales, domain.Revenue)
	s.mockInventorySvc.On("GetItemByID", s.ctx, s.tenantID, "item-egg").
		Return(&domain.InventoryItem{ItemID: "item-egg", Name: "Table Egg", AverageCost: decimal.NewFromFloat(0.2)}, nil).Once()
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == receivable.AccountID &&
			req.Items[0].Debit.Equal(decimal.NewFromInt(150))
	}), s.userID).Return(s.stubEntry("e-invoice"), nil).Once()

	entries, err := s.service.PostSaleInvoice(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), entries, 1)
	s.mockSettingsSvc.AssertNotCalled(s.T(), "AccountForRole", s.ctx, s.tenantID, domain.RoleCOGS)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostSaleInvoice_NonEggPostsCOGS() {
	req := dto.SaleInvoiceEvent{
		OrderNumber: "12",
		Date:        s.date,
		Lines: []dto.SaleLine{
			{ItemID: "item-manure", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(20)},
		},
	}

	s.expectEvent(domain.EventSaleInvoice, "SO-12")
	s.mockInventorySvc.On("ConsumeStock", s.ctx, s.tenantID, mock.Anything, s.userID).
		Return(&domain.InventoryItem{ItemID: "item-manure"}, nil).Once()
	s.expectRole(domain.RoleAccountsReceivable, domain.Asset)
	s.expectRole(domain.RoleSales, domain.Revenue)
	cogs := s.expectRole(domain.RoleCOGS, domain.Expense)
	inventory := s.expectRole(domain.RoleInventory, domain.Asset)
	s.mockInventorySvc.On("GetItemByID", s.ctx, s.tenantID, "item-manure").
		Return(&domain.InventoryItem{ItemID: "item-manure", Name: "Manure", AverageCost: decimal.NewFromInt(4)}, nil).Once()
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].Debit.Equal(decimal.NewFromInt(200))
	}), s.userID).Return(s.stubEntry("e-invoice"), nil).Once()
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == cogs.AccountID &&
			req.Items[1].AccountID == inventory.AccountID &&
			req.Items[0].Debit.Equal(decimal.NewFromInt(40))
	}), s.userID).Return(s.stubEntry("e-cogs"), nil).Once()

	entries, err := s.service.PostSaleInvoice(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), entries, 2)
	assert.Equal(s.T(), "e-invoice", entries[0].EntryID)
	assert.Equal(s.T(), "e-cogs", entries[1].EntryID)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostOperationalExpense_NameMatchedAccount() {
	req := dto.OperationalExpenseEvent{
		ExpenseID:   "31",
		Date:        s.date,
		ExpenseType: "Electricity",
		Amount:      decimal.NewFromInt(90),
	}

	s.expectEvent(domain.EventOperationalExpense, "EXP-31")
	electricity := &domain.Account{AccountID: "acct-electricity", AccountType: domain.Expense, IsActive: true}
	s.mockAccountRepo.On("FindAccountByName", s.ctx, s.tenantID, "Electricity").Return(electricity, nil).Once()
	cash := s.expectRole(domain.RoleCash, domain.Asset)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == "acct-electricity" &&
			req.Items[1].AccountID == cash.AccountID &&
			req.Items[0].Debit.Equal(decimal.NewFromInt(90))
	}), s.userID).Return(s.stubEntry("e1"), nil).Once()

	_, err := s.service.PostOperationalExpense(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	s.mockSettingsSvc.AssertNotCalled(s.T(), "AccountForRole", s.ctx, s.tenantID, domain.RoleOperationalExpense)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostOperationalExpense_FallsBackToDefault() {
	req := dto.OperationalExpenseEvent{
		ExpenseID:   "32",
		Date:        s.date,
		ExpenseType: "Generator Diesel",
		Amount:      decimal.NewFromInt(60),
	}

	s.expectEvent(domain.EventOperationalExpense, "EXP-32")
	s.mockAccountRepo.On("FindAccountByName", s.ctx, s.tenantID, "Generator Diesel").
		Return(nil, apperrors.ErrNotFound).Once()
	opex := s.expectRole(domain.RoleOperationalExpense, domain.Expense)
	s.expectRole(domain.RoleCash, domain.Asset)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == opex.AccountID
	}), s.userID).Return(s.stubEntry("e1"), nil).Once()

	_, err := s.service.PostOperationalExpense(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostCompositionUsage_TimesMultiplier() {
	req := dto.CompositionUsageEvent{
		UsageID: "9",
		Date:    s.date,
		Times:   3,
		Lines: []dto.UsageLine{
			{ItemID: "item-maize", Quantity: decimal.NewFromInt(50)},
		},
	}

	s.expectEvent(domain.EventCompositionUsage, "USAGE-9")
	s.mockInventorySvc.On("ConsumeStock", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.StockConsumptionRequest) bool {
		return req.ItemID == "item-maize" &&
			req.Quantity.Equal(decimal.NewFromInt(150)) &&
			req.ChangeType == string(domain.StockChangeUsage)
	}), s.userID).Return(&domain.InventoryItem{ItemID: "item-maize"}, nil).Once()
	s.mockInventorySvc.On("GetItemByID", s.ctx, s.tenantID, "item-maize").
		Return(&domain.InventoryItem{ItemID: "item-maize", Name: "Maize", AverageCost: decimal.NewFromInt(2)}, nil).Once()
	cogs := s.expectRole(domain.RoleCOGS, domain.Expense)
	s.expectRole(domain.RoleInventory, domain.Asset)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == cogs.AccountID &&
			req.Items[0].Debit.Equal(decimal.NewFromInt(300))
	}), s.userID).Return(s.stubEntry("e1"), nil).Once()

	_, err := s.service.PostCompositionUsage(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	s.mockInventorySvc.AssertExpectations(s.T())
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestRevertCompositionUsage_StockOnly() {
	req := dto.UsageReversalEvent{
		UsageID: "9",
		Times:   2,
		Lines: []dto.UsageLine{
			{ItemID: "item-maize", Quantity: decimal.NewFromInt(50)},
		},
	}

	s.expectEvent(domain.EventUsageReversal, "USAGE-9")
	s.mockInventorySvc.On("ReturnStock", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.StockReturnRequest) bool {
		return req.ItemID == "item-maize" && req.Quantity.Equal(decimal.NewFromInt(100))
	}), s.userID).Return(&domain.InventoryItem{ItemID: "item-maize"}, nil).Once()

	err := s.service.RevertCompositionUsage(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockInventorySvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostSalePayment_EventLogFailureStillPosts() {
	req := dto.SalePaymentEvent{OrderNumber: "5", Date: s.date, Amount: decimal.NewFromInt(75)}

	s.mockEventRepo.On("AppendEvent", s.ctx, mock.Anything).Return(errors.New("event store down")).Once()
	cash := s.expectRole(domain.RoleCash, domain.Asset)
	s.expectRole(domain.RoleAccountsReceivable, domain.Asset)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Items[0].AccountID == cash.AccountID && req.Items[0].Debit.Equal(decimal.NewFromInt(75))
	}), s.userID).Return(s.stubEntry("e1"), nil).Once()

	entry, err := s.service.PostSalePayment(s.ctx, s.tenantID, req, s.userID)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), entry)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestReplayEvent_PurchasePayment() {
	payload, err := json.Marshal(dto.PurchasePaymentEvent{OrderNumber: "PO-7", Date: s.date, Amount: decimal.NewFromInt(500)})
	assert.NoError(s.T(), err)
	event := domain.PostedEvent{
		EventID:   "ev-1",
		TenantID:  s.tenantID,
		EventType: domain.EventPurchasePayment,
		Reference: "PO-7",
		Payload:   payload,
		CreatedBy: s.userID,
	}

	s.expectRole(domain.RoleAccountsPayable, domain.Liability)
	s.expectRole(domain.RoleCash, domain.Asset)
	s.mockJournalSvc.On("CreateEntry", s.ctx, s.tenantID, mock.Anything, s.userID).
		Return(s.stubEntry("e1"), nil).Once()

	posted, err := s.service.ReplayEvent(s.ctx, s.tenantID, event)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 1, posted)
	// Replay never touches stock or the event log.
	s.mockInventorySvc.AssertNotCalled(s.T(), "ReceiveStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockEventRepo.AssertNotCalled(s.T(), "AppendEvent", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestReplayEvent_UsageReversalIsNoop() {
	event := domain.PostedEvent{EventType: domain.EventUsageReversal}

	posted, err := s.service.ReplayEvent(s.ctx, s.tenantID, event)

	assert.NoError(s.T(), err)
	assert.Zero(s.T(), posted)
}

func (s *PostingServiceTestSuite) TestReplayEvent_UnknownType() {
	event := domain.PostedEvent{EventType: domain.EventType("SOMETHING_ELSE")}

	posted, err := s.service.ReplayEvent(s.ctx, s.tenantID, event)

	assert.Zero(s.T(), posted)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}
