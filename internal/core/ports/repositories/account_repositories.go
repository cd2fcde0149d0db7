package repositories

import (
	"context"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// AccountRepository persists the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, limit, offset int) ([]domain.Account, error)
	// IsAccountReferenced reports whether any journal item or settings role
	// points at the account. Referenced accounts cannot be deactivated or
	// retyped.
	IsAccountReferenced(ctx context.Context, tenantID, accountID string) (bool, error)
}

// SettingsRepository persists per-tenant financial settings.
type SettingsRepository interface {
	FindSettings(ctx context.Context, tenantID string) (*domain.FinancialSettings, error)
	SaveSettings(ctx context.Context, settings domain.FinancialSettings) error
	// UpdateSettingsIfUnlocked applies the update only when is_initialized is
	// false, checking and writing within one transaction. Returns
	// apperrors.ErrLocked when the settings are already initialized.
	UpdateSettingsIfUnlocked(ctx context.Context, settings domain.FinancialSettings) error
}
