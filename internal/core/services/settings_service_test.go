package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/core/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo *MockSettingsRepository
	mockAccountRepo  *MockAccountRepository
	mockAccountSvc   *MockAccountWriterSvc
	service          portssvc.SettingsSvc
	ctx              context.Context
	tenantID         string
	userID           string
}

func (s *SettingsServiceTestSuite) SetupTest() {
	s.mockSettingsRepo = new(MockSettingsRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockAccountSvc = new(MockAccountWriterSvc)
	s.service = services.NewSettingsService(s.mockSettingsRepo, s.mockAccountRepo, s.mockAccountSvc)
	s.ctx = context.Background()
	s.tenantID = "tenant-1"
	s.userID = "user-1"
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (s *SettingsServiceTestSuite) unlockedSettings() *domain.FinancialSettings {
	return &domain.FinancialSettings{
		TenantID:                    s.tenantID,
		CashAccountID:               "acct-cash",
		SalesAccountID:              "acct-sales",
		InventoryAccountID:          "acct-inventory",
		COGSAccountID:               "acct-cogs",
		OperationalExpenseAccountID: "acct-opex",
		AccountsPayableAccountID:    "acct-ap",
		AccountsReceivableAccountID: "acct-ar",
	}
}

func (s *SettingsServiceTestSuite) TestGetSettings_Existing() {
	existing := s.unlockedSettings()
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(existing, nil).Once()

	settings, err := s.service.GetSettings(s.ctx, s.tenantID, s.userID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), existing, settings)
	s.mockAccountSvc.AssertNotCalled(s.T(), "GetOrCreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SettingsServiceTestSuite) TestGetSettings_SeedsOnFirstAccess() {
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(nil, apperrors.ErrNotFound).Once()
	for _, seed := range domain.DefaultAccountSeeds() {
		account := &domain.Account{
			AccountID:   "acct-" + string(seed.Role),
			TenantID:    s.tenantID,
			Code:        seed.Code,
			Name:        seed.Name,
			AccountType: seed.Type,
			IsActive:    true,
		}
		s.mockAccountSvc.On("GetOrCreateAccount", s.ctx, s.tenantID, seed, s.userID).Return(account, nil).Once()
	}
	s.mockSettingsRepo.On("SaveSettings", s.ctx, mock.MatchedBy(func(settings domain.FinancialSettings) bool {
		return settings.CashAccountID == "acct-cash" &&
			settings.SalesAccountID == "acct-sales" &&
			settings.InventoryAccountID == "acct-inventory" &&
			settings.COGSAccountID == "acct-cogs" &&
			settings.OperationalExpenseAccountID == "acct-operational_expense" &&
			settings.AccountsPayableAccountID == "acct-accounts_payable" &&
			settings.AccountsReceivableAccountID == "acct-accounts_receivable" &&
			settings.IsInitialized
	})).Return(nil).Once()

	settings, err := s.service.GetSettings(s.ctx, s.tenantID, s.userID)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), settings)
	assert.Equal(s.T(), "acct-cash", settings.CashAccountID)
	assert.True(s.T(), settings.IsInitialized)
	s.mockAccountSvc.AssertExpectations(s.T())
	s.mockSettingsRepo.AssertExpectations(s.T())
}

func (s *SettingsServiceTestSuite) TestGetSettings_BackfillsMissingRole() {
	existing := s.unlockedSettings()
	existing.COGSAccountID = ""
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(existing, nil).Once()

	var cogsSeed domain.DefaultAccountSeed
	for _, seed := range domain.DefaultAccountSeeds() {
		if seed.Role == domain.RoleCOGS {
			cogsSeed = seed
		}
	}
	s.mockAccountSvc.On("GetOrCreateAccount", s.ctx, s.tenantID, cogsSeed, s.userID).
		Return(&domain.Account{AccountID: "acct-cogs-new", AccountType: domain.Expense, IsActive: true}, nil).Once()
	s.mockSettingsRepo.On("SaveSettings", s.ctx, mock.MatchedBy(func(settings domain.FinancialSettings) bool {
		return settings.COGSAccountID == "acct-cogs-new" &&
			settings.CashAccountID == "acct-cash" &&
			settings.IsInitialized
	})).Return(nil).Once()

	settings, err := s.service.GetSettings(s.ctx, s.tenantID, s.userID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "acct-cogs-new", settings.COGSAccountID)
	assert.True(s.T(), settings.IsInitialized)
	s.mockAccountSvc.AssertExpectations(s.T())
	s.mockSettingsRepo.AssertExpectations(s.T())
}

func (s *SettingsServiceTestSuite) TestGetSettings_CompleteRowNotRewritten() {
	existing := s.unlockedSettings()
	existing.IsInitialized = true
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(existing, nil).Once()

	settings, err := s.service.GetSettings(s.ctx, s.tenantID, s.userID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), existing, settings)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "SaveSettings", mock.Anything, mock.Anything)
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_Locked() {
	locked := s.unlockedSettings()
	locked.IsInitialized = true
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(locked, nil).Once()

	newCash := "acct-other-cash"
	settings, err := s.service.UpdateSettings(s.ctx, s.tenantID, dto.UpdateSettingsRequest{CashAccountID: &newCash}, s.userID)

	assert.Nil(s.T(), settings)
	assert.ErrorIs(s.T(), err, apperrors.ErrLocked)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "UpdateSettingsIfUnlocked", mock.Anything, mock.Anything)
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_WrongAccountType() {
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(s.unlockedSettings(), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.tenantID, "acct-revenue").
		Return(&domain.Account{AccountID: "acct-revenue", AccountType: domain.Revenue, IsActive: true}, nil).Once()

	newCash := "acct-revenue"
	settings, err := s.service.UpdateSettings(s.ctx, s.tenantID, dto.UpdateSettingsRequest{CashAccountID: &newCash}, s.userID)

	assert.Nil(s.T(), settings)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "UpdateSettingsIfUnlocked", mock.Anything, mock.Anything)
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_RemapsRole() {
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(s.unlockedSettings(), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.tenantID, "acct-petty-cash").
		Return(&domain.Account{AccountID: "acct-petty-cash", AccountType: domain.Asset, IsActive: true}, nil).Once()
	s.mockSettingsRepo.On("UpdateSettingsIfUnlocked", s.ctx, mock.MatchedBy(func(settings domain.FinancialSettings) bool {
		return settings.CashAccountID == "acct-petty-cash" && settings.SalesAccountID == "acct-sales"
	})).Return(nil).Once()

	newCash := "acct-petty-cash"
	settings, err := s.service.UpdateSettings(s.ctx, s.tenantID, dto.UpdateSettingsRequest{CashAccountID: &newCash}, s.userID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "acct-petty-cash", settings.CashAccountID)
	s.mockSettingsRepo.AssertExpectations(s.T())
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_ConcurrentLockWins() {
	// Unlocked on read, but locked by the time the repository transaction
	// re-checks.
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(s.unlockedSettings(), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.tenantID, "acct-petty-cash").
		Return(&domain.Account{AccountID: "acct-petty-cash", AccountType: domain.Asset, IsActive: true}, nil).Once()
	s.mockSettingsRepo.On("UpdateSettingsIfUnlocked", s.ctx, mock.Anything).Return(apperrors.ErrLocked).Once()

	newCash := "acct-petty-cash"
	settings, err := s.service.UpdateSettings(s.ctx, s.tenantID, dto.UpdateSettingsRequest{CashAccountID: &newCash}, s.userID)

	assert.Nil(s.T(), settings)
	assert.ErrorIs(s.T(), err, apperrors.ErrLocked)
}

func (s *SettingsServiceTestSuite) TestFirstAccessSeedLocksMapping() {
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(nil, apperrors.ErrNotFound).Once()
	for _, seed := range domain.DefaultAccountSeeds() {
		account := &domain.Account{
			AccountID:   "acct-" + string(seed.Role),
			TenantID:    s.tenantID,
			AccountType: seed.Type,
			IsActive:    true,
		}
		s.mockAccountSvc.On("GetOrCreateAccount", s.ctx, s.tenantID, seed, s.userID).Return(account, nil).Once()
	}
	s.mockSettingsRepo.On("SaveSettings", s.ctx, mock.Anything).Return(nil).Once()

	seeded, err := s.service.GetSettings(s.ctx, s.tenantID, s.userID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), seeded.IsInitialized)

	// A remap attempt on the freshly seeded settings must bounce off the
	// lock without reaching the repository write.
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(seeded, nil).Once()
	newCash := "acct-other-cash"
	settings, err := s.service.UpdateSettings(s.ctx, s.tenantID, dto.UpdateSettingsRequest{CashAccountID: &newCash}, s.userID)

	assert.Nil(s.T(), settings)
	assert.ErrorIs(s.T(), err, apperrors.ErrLocked)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "UpdateSettingsIfUnlocked", mock.Anything, mock.Anything)
}

func (s *SettingsServiceTestSuite) TestAccountForRole_Resolves() {
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(s.unlockedSettings(), nil).Once()
	account := &domain.Account{AccountID: "acct-cogs", AccountType: domain.Expense, IsActive: true}
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.tenantID, "acct-cogs").Return(account, nil).Once()

	resolved, err := s.service.AccountForRole(s.ctx, s.tenantID, domain.RoleCOGS)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), account, resolved)
}

func (s *SettingsServiceTestSuite) TestAccountForRole_DanglingMapping() {
	s.mockSettingsRepo.On("FindSettings", s.ctx, s.tenantID).Return(s.unlockedSettings(), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.tenantID, "acct-cogs").
		Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := s.service.AccountForRole(s.ctx, s.tenantID, domain.RoleCOGS)

	assert.Nil(s.T(), resolved)
	assert.ErrorIs(s.T(), err, apperrors.ErrConfiguration)
}
