package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
)

type SettingsService struct {
	settingsRepo portsrepo.SettingsRepository
	accountRepo  portsrepo.AccountRepository
	accountSvc   portssvc.AccountWriterSvc
}

func NewSettingsService(settingsRepo portsrepo.SettingsRepository, accountRepo portsrepo.AccountRepository, accountSvc portssvc.AccountWriterSvc) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		accountRepo:  accountRepo,
		accountSvc:   accountSvc,
	}
}

// GetSettings returns the tenant's settings, seeding the default chart of
// accounts and role mappings on first access. Seeding marks the settings
// initialized immediately, locking the mapping from the first read onward.
// Existing rows with missing role mappings are backfilled and locked too.
func (s *SettingsService) GetSettings(ctx context.Context, tenantID string, userID string) (*domain.FinancialSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.settingsRepo.FindSettings(ctx, tenantID)
	if err == nil {
		return s.backfillMissingRoles(ctx, settings, userID)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	seeded := domain.FinancialSettings{
		TenantID:      tenantID,
		IsInitialized: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now(),
			CreatedBy:     userID,
			LastUpdatedAt: time.Now(),
			LastUpdatedBy: userID,
		},
	}
	for _, seed := range domain.DefaultAccountSeeds() {
		account, err := s.accountSvc.GetOrCreateAccount(ctx, tenantID, seed, userID)
		if err != nil {
			return nil, fmt.Errorf("seeding default account %q: %w", seed.Name, err)
		}
		applyRole(&seeded, seed.Role, account.AccountID)
	}

	if err := s.settingsRepo.SaveSettings(ctx, seeded); err != nil {
		logger.Error("Failed to save seeded settings", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	logger.Info("Financial settings seeded", slog.String("tenant_id", tenantID))
	return &seeded, nil
}

func (s *SettingsService) backfillMissingRoles(ctx context.Context, settings *domain.FinancialSettings, userID string) (*domain.FinancialSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	changed := false
	for _, seed := range domain.DefaultAccountSeeds() {
		if settings.AccountIDForRole(seed.Role) != "" {
			continue
		}
		account, err := s.accountSvc.GetOrCreateAccount(ctx, settings.TenantID, seed, userID)
		if err != nil {
			return nil, fmt.Errorf("backfilling default account %q: %w", seed.Name, err)
		}
		applyRole(settings, seed.Role, account.AccountID)
		changed = true
	}
	if !changed {
		return settings, nil
	}

	// A repaired mapping locks the settings just like first-access seeding.
	settings.IsInitialized = true
	settings.LastUpdatedAt = time.Now()
	settings.LastUpdatedBy = userID
	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		logger.Error("Failed to save backfilled settings", slog.String("error", err.Error()), slog.String("tenant_id", settings.TenantID))
		return nil, err
	}

	logger.Info("Backfilled missing role mappings", slog.String("tenant_id", settings.TenantID))
	return settings, nil
}

// UpdateSettings remaps role accounts. Each mapped account must exist and
// carry the role's expected type. Locked settings reject every change.
func (s *SettingsService) UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest, userID string) (*domain.FinancialSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.GetSettings(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if settings.IsInitialized {
		return nil, fmt.Errorf("financial settings are initialized: %w", apperrors.ErrLocked)
	}

	updates := map[domain.AccountRole]*string{
		domain.RoleCash:               req.CashAccountID,
		domain.RoleSales:              req.SalesAccountID,
		domain.RoleInventory:          req.InventoryAccountID,
		domain.RoleCOGS:               req.COGSAccountID,
		domain.RoleOperationalExpense: req.OperationalExpenseAccountID,
		domain.RoleAccountsPayable:    req.AccountsPayableAccountID,
		domain.RoleAccountsReceivable: req.AccountsReceivableAccountID,
	}
	expected := domain.ExpectedRoleTypes()
	for role, accountID := range updates {
		if accountID == nil {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, tenantID, *accountID)
		if err != nil {
			return nil, fmt.Errorf("account for role %s: %w", role, err)
		}
		if account.AccountType != expected[role] {
			return nil, fmt.Errorf("role %s requires a %s account, got %s: %w", role, expected[role], account.AccountType, apperrors.ErrValidation)
		}
		applyRole(settings, role, *accountID)
	}

	settings.LastUpdatedAt = time.Now()
	settings.LastUpdatedBy = userID

	// The lock is re-checked inside the repository transaction so a
	// concurrent first read, which seeds and locks, cannot race a remap
	// through.
	if err := s.settingsRepo.UpdateSettingsIfUnlocked(ctx, *settings); err != nil {
		if !errors.Is(err, apperrors.ErrLocked) {
			logger.Error("Failed to update settings", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		}
		return nil, err
	}

	logger.Info("Financial settings updated", slog.String("tenant_id", tenantID))
	return settings, nil
}

// AccountForRole resolves a role mapping to its account.
func (s *SettingsService) AccountForRole(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error) {
	settings, err := s.GetSettings(ctx, tenantID, middleware.SystemUserID)
	if err != nil {
		return nil, err
	}

	accountID := settings.AccountIDForRole(role)
	if accountID == "" {
		return nil, fmt.Errorf("no account mapped for role %s: %w", role, apperrors.ErrConfiguration)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account mapped for role %s no longer exists: %w", role, apperrors.ErrConfiguration)
		}
		return nil, err
	}
	return account, nil
}

func applyRole(settings *domain.FinancialSettings, role domain.AccountRole, accountID string) {
	switch role {
	case domain.RoleCash:
		settings.CashAccountID = accountID
	case domain.RoleSales:
		settings.SalesAccountID = accountID
	case domain.RoleInventory:
		settings.InventoryAccountID = accountID
	case domain.RoleCOGS:
		settings.COGSAccountID = accountID
	case domain.RoleOperationalExpense:
		settings.OperationalExpenseAccountID = accountID
	case domain.RoleAccountsPayable:
		settings.AccountsPayableAccountID = accountID
	case domain.RoleAccountsReceivable:
		settings.AccountsReceivableAccountID = accountID
	}
}
