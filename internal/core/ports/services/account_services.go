package services

import (
	"context"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally filtered by type.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates mutable account details.
	UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts referenced
	// by journal items are never hard-deleted.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error

	// GetOrCreateAccount finds an account by name, then by code, creating it
	// from the given seed when neither exists.
	GetOrCreateAccount(ctx context.Context, tenantID string, seed domain.DefaultAccountSeed, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// SettingsSvc manages the tenant's financial settings and default accounts.
type SettingsSvc interface {
	// GetSettings returns the tenant settings, seeding default accounts and
	// role mappings on first access.
	GetSettings(ctx context.Context, tenantID string, userID string) (*domain.FinancialSettings, error)

	// UpdateSettings changes role mappings. Returns apperrors.ErrLocked once
	// the settings are initialized, which happens on the first seeding read.
	UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest, userID string) (*domain.FinancialSettings, error)

	// AccountForRole resolves the account mapped to a role, or
	// apperrors.ErrConfiguration when the mapping is absent.
	AccountForRole(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error)
}
