package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) IsAccountReferenced(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepository = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) FindSettings(ctx context.Context, tenantID string) (*domain.FinancialSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.FinancialSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) UpdateSettingsIfUnlocked(ctx context.Context, settings domain.FinancialSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, start, end *time.Time, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, start, end, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntriesForTenant(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) AccountBalance(ctx context.Context, tenantID, accountID string, since *time.Time, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, since, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) TypeBalance(ctx context.Context, tenantID string, accountType domain.AccountType, since *time.Time, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountType, since, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) BalancesByAccount(ctx context.Context, tenantID string, accountTypes []domain.AccountType, since *time.Time, asOf time.Time) (map[domain.AccountType][]domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, accountTypes, since, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountType][]domain.AccountAmount), args.Error(1)
}

func (m *MockReportingRepository) LedgerRows(ctx context.Context, tenantID, accountID string, start, end time.Time) ([]domain.GeneralLedgerRow, error) {
	args := m.Called(ctx, tenantID, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerRow), args.Error(1)
}

func (m *MockReportingRepository) MissingPostingCount(ctx context.Context, tenantID string, start, end time.Time) (int, error) {
	args := m.Called(ctx, tenantID, start, end)
	return args.Int(0), args.Error(1)
}

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepository = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, tenantID, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemByName(ctx context.Context, tenantID, name string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context, tenantID string, limit, offset int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

// MutateItem runs fn against a copy of the stubbed item, mirroring the
// real repository's read-modify-write under a row lock. An error from fn
// aborts the mutation just as it would roll back the transaction.
func (m *MockInventoryRepository) MutateItem(ctx context.Context, tenantID, itemID string, fn func(item *domain.InventoryItem) error) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	item := *args.Get(0).(*domain.InventoryItem)
	if err := fn(&item); err != nil {
		return nil, err
	}
	return &item, args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Append(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, tenantID, entity, recordID string, limit int) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, tenantID, entity, recordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

// --- Mock EventLogRepository ---
type MockEventLogRepository struct {
	mock.Mock
}

var _ portsrepo.EventLogRepository = (*MockEventLogRepository)(nil)

func (m *MockEventLogRepository) AppendEvent(ctx context.Context, event domain.PostedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventLogRepository) ListEvents(ctx context.Context, tenantID string) ([]domain.PostedEvent, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedEvent), args.Error(1)
}

// --- Mock EggRoomRepository ---
type MockEggRoomRepository struct {
	mock.Mock
}

var _ portsrepo.EggRoomRepository = (*MockEggRoomRepository)(nil)

func (m *MockEggRoomRepository) FindReportByDate(ctx context.Context, tenantID string, date time.Time) (*domain.EggRoomReport, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EggRoomReport), args.Error(1)
}

func (m *MockEggRoomRepository) FindLatestReportBefore(ctx context.Context, tenantID string, date time.Time) (*domain.EggRoomReport, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EggRoomReport), args.Error(1)
}

func (m *MockEggRoomRepository) ListReports(ctx context.Context, tenantID string, start, end time.Time) ([]domain.EggRoomReport, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EggRoomReport), args.Error(1)
}

func (m *MockEggRoomRepository) SaveReport(ctx context.Context, report domain.EggRoomReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockEggRoomRepository) UpdateReports(ctx context.Context, reports []domain.EggRoomReport) error {
	args := m.Called(ctx, reports)
	return args.Error(0)
}

func (m *MockEggRoomRepository) DeleteReport(ctx context.Context, tenantID string, date time.Time) error {
	args := m.Called(ctx, tenantID, date)
	return args.Error(0)
}

func (m *MockEggRoomRepository) Baseline(ctx context.Context, tenantID string) (domain.EggChainBaseline, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(domain.EggChainBaseline), args.Error(1)
}

// --- Mock FlockRepository ---
type MockFlockRepository struct {
	mock.Mock
}

var _ portsrepo.FlockRepository = (*MockFlockRepository)(nil)

func (m *MockFlockRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockFlockRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockFlockRepository) FindBatchByID(ctx context.Context, tenantID, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, tenantID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockFlockRepository) ListActiveBatches(ctx context.Context, tenantID string) ([]domain.Batch, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockFlockRepository) ListTenantsWithActiveBatches(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFlockRepository) FindRow(ctx context.Context, tenantID, batchID string, date time.Time) (*domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, batchID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockRepository) FindLatestRowBefore(ctx context.Context, tenantID, batchID string, date time.Time) (*domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, batchID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockRepository) ListRowsAfter(ctx context.Context, tenantID, batchID string, date time.Time) ([]domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, batchID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockRepository) ListRowsForDate(ctx context.Context, tenantID string, date time.Time) ([]domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockRepository) SaveRow(ctx context.Context, row domain.DailyBatchRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockFlockRepository) UpdateRows(ctx context.Context, rows []domain.DailyBatchRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockFlockRepository) SumProductionByDate(ctx context.Context, tenantID string, start, end time.Time) (map[string]domain.EggStockLevels, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.EggStockLevels), args.Error(1)
}

// --- Mock StandardsRepository ---
type MockStandardsRepository struct {
	mock.Mock
}

var _ portsrepo.StandardsRepository = (*MockStandardsRepository)(nil)

func (m *MockStandardsRepository) CurveForTenant(ctx context.Context, tenantID string) (domain.StandardCurve, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StandardCurve), args.Error(1)
}

func (m *MockStandardsRepository) SaveStandard(ctx context.Context, standard domain.PerformanceStandard) error {
	args := m.Called(ctx, standard)
	return args.Error(0)
}

// --- Mock AccountWriterSvc ---
type MockAccountWriterSvc struct {
	mock.Mock
}

var _ portssvc.AccountWriterSvc = (*MockAccountWriterSvc)(nil)

func (m *MockAccountWriterSvc) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountWriterSvc) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountWriterSvc) DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error {
	args := m.Called(ctx, tenantID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountWriterSvc) GetOrCreateAccount(ctx context.Context, tenantID string, seed domain.DefaultAccountSeed, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, seed, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock JournalWriterSvc ---
type MockJournalWriterSvc struct {
	mock.Mock
}

var _ portssvc.JournalWriterSvc = (*MockJournalWriterSvc)(nil)

func (m *MockJournalWriterSvc) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock SettingsSvc ---
type MockSettingsSvc struct {
	mock.Mock
}

var _ portssvc.SettingsSvc = (*MockSettingsSvc)(nil)

func (m *MockSettingsSvc) GetSettings(ctx context.Context, tenantID string, userID string) (*domain.FinancialSettings, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSettings), args.Error(1)
}

func (m *MockSettingsSvc) UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest, userID string) (*domain.FinancialSettings, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSettings), args.Error(1)
}

func (m *MockSettingsSvc) AccountForRole(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock InventorySvcFacade ---
type MockInventorySvc struct {
	mock.Mock
}

var _ portssvc.InventorySvcFacade = (*MockInventorySvc)(nil)

func (m *MockInventorySvc) GetItemByID(ctx context.Context, tenantID string, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventorySvc) ListItems(ctx context.Context, tenantID string, params dto.ListItemsParams) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventorySvc) CreateItem(ctx context.Context, tenantID string, req dto.CreateItemRequest, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventorySvc) UpdateItem(ctx context.Context, tenantID string, itemID string, req dto.UpdateItemRequest, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventorySvc) ReceiveStock(ctx context.Context, tenantID string, req dto.StockReceiptRequest, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventorySvc) ConsumeStock(ctx context.Context, tenantID string, req dto.StockConsumptionRequest, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventorySvc) ReturnStock(ctx context.Context, tenantID string, req dto.StockReturnRequest, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

// --- Mock EggRoomSvc ---
type MockEggRoomSvc struct {
	mock.Mock
}

var _ portssvc.EggRoomSvc = (*MockEggRoomSvc)(nil)

func (m *MockEggRoomSvc) GetReport(ctx context.Context, tenantID string, date time.Time, userID string) (*domain.EggRoomReport, error) {
	args := m.Called(ctx, tenantID, date, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EggRoomReport), args.Error(1)
}

func (m *MockEggRoomSvc) ListReports(ctx context.Context, tenantID string, start, end time.Time) ([]domain.EggRoomReport, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EggRoomReport), args.Error(1)
}

func (m *MockEggRoomSvc) UpdateReport(ctx context.Context, tenantID string, date time.Time, req dto.UpdateEggRoomReportRequest, userID string) (*domain.EggRoomReport, error) {
	args := m.Called(ctx, tenantID, date, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EggRoomReport), args.Error(1)
}

func (m *MockEggRoomSvc) DeleteReport(ctx context.Context, tenantID string, date time.Time, userID string) error {
	args := m.Called(ctx, tenantID, date, userID)
	return args.Error(0)
}

func (m *MockEggRoomSvc) CurrentStock(ctx context.Context, tenantID string) (domain.EggStockLevels, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(domain.EggStockLevels), args.Error(1)
}

func (m *MockEggRoomSvc) RefreshFrom(ctx context.Context, tenantID string, from time.Time) error {
	args := m.Called(ctx, tenantID, from)
	return args.Error(0)
}

// --- Mock FlockSvc ---
type MockFlockSvc struct {
	mock.Mock
}

var _ portssvc.FlockSvc = (*MockFlockSvc)(nil)

func (m *MockFlockSvc) CreateBatch(ctx context.Context, tenantID string, req dto.CreateBatchRequest, userID string) (*domain.Batch, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockFlockSvc) GetBatch(ctx context.Context, tenantID string, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, tenantID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockFlockSvc) ListActiveBatches(ctx context.Context, tenantID string) ([]domain.Batch, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockFlockSvc) CloseBatch(ctx context.Context, tenantID string, batchID string, userID string) error {
	args := m.Called(ctx, tenantID, batchID, userID)
	return args.Error(0)
}

func (m *MockFlockSvc) GetDailyRow(ctx context.Context, tenantID string, batchID string, date time.Time, userID string) (*domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, batchID, date, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockSvc) ListDailyRows(ctx context.Context, tenantID string, date time.Time, userID string) ([]domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, date, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockSvc) UpdateDailyRow(ctx context.Context, tenantID string, batchID string, date time.Time, req dto.UpdateDailyRowRequest, userID string) (*domain.DailyBatchRow, error) {
	args := m.Called(ctx, tenantID, batchID, date, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyBatchRow), args.Error(1)
}

func (m *MockFlockSvc) SnapshotToday(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock PostingSvc ---
type MockPostingSvc struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingSvc)(nil)

func (m *MockPostingSvc) PostPurchaseReceipt(ctx context.Context, tenantID string, req dto.PurchaseReceiptEvent, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) PostPurchasePayment(ctx context.Context, tenantID string, req dto.PurchasePaymentEvent, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) PostSaleInvoice(ctx context.Context, tenantID string, req dto.SaleInvoiceEvent, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) PostSalePayment(ctx context.Context, tenantID string, req dto.SalePaymentEvent, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) PostOperationalExpense(ctx context.Context, tenantID string, req dto.OperationalExpenseEvent, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) PostCompositionUsage(ctx context.Context, tenantID string, req dto.CompositionUsageEvent, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) RevertCompositionUsage(ctx context.Context, tenantID string, req dto.UsageReversalEvent, userID string) error {
	args := m.Called(ctx, tenantID, req, userID)
	return args.Error(0)
}

func (m *MockPostingSvc) ReplayEvent(ctx context.Context, tenantID string, event domain.PostedEvent) (int, error) {
	args := m.Called(ctx, tenantID, event)
	return args.Int(0), args.Error(1)
}
