package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

const settingsColumns = `tenant_id, cash_account_id, sales_account_id, inventory_account_id, cogs_account_id,
	operational_expense_account_id, accounts_payable_account_id, accounts_receivable_account_id, is_initialized,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context, tenantID string) (*domain.FinancialSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM financial_settings WHERE tenant_id = $1;`

	var s domain.FinancialSettings
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&s.TenantID,
		&s.CashAccountID,
		&s.SalesAccountID,
		&s.InventoryAccountID,
		&s.COGSAccountID,
		&s.OperationalExpenseAccountID,
		&s.AccountsPayableAccountID,
		&s.AccountsReceivableAccountID,
		&s.IsInitialized,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for tenant %s: %w", tenantID, err)
	}
	return &s, nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.FinancialSettings) error {
	query := `
		INSERT INTO financial_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (tenant_id) DO UPDATE SET
			cash_account_id = EXCLUDED.cash_account_id,
			sales_account_id = EXCLUDED.sales_account_id,
			inventory_account_id = EXCLUDED.inventory_account_id,
			cogs_account_id = EXCLUDED.cogs_account_id,
			operational_expense_account_id = EXCLUDED.operational_expense_account_id,
			accounts_payable_account_id = EXCLUDED.accounts_payable_account_id,
			accounts_receivable_account_id = EXCLUDED.accounts_receivable_account_id,
			is_initialized = EXCLUDED.is_initialized,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		settings.TenantID,
		settings.CashAccountID,
		settings.SalesAccountID,
		settings.InventoryAccountID,
		settings.COGSAccountID,
		settings.OperationalExpenseAccountID,
		settings.AccountsPayableAccountID,
		settings.AccountsReceivableAccountID,
		settings.IsInitialized,
		settings.CreatedAt,
		settings.CreatedBy,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings for tenant %s: %w", settings.TenantID, err)
	}
	return nil
}

// UpdateSettingsIfUnlocked re-checks the lock inside the transaction while
// holding the row, so a concurrent lock cannot race the write.
func (r *PgxSettingsRepository) UpdateSettingsIfUnlocked(ctx context.Context, settings domain.FinancialSettings) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		var locked bool
		err := tx.QueryRow(ctx,
			`SELECT is_initialized FROM financial_settings WHERE tenant_id = $1 FOR UPDATE;`,
			settings.TenantID,
		).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock settings for tenant %s: %w", settings.TenantID, err)
		}
		if locked {
			return apperrors.ErrLocked
		}

		_, err = tx.Exec(ctx, `
			UPDATE financial_settings SET
				cash_account_id = $2,
				sales_account_id = $3,
				inventory_account_id = $4,
				cogs_account_id = $5,
				operational_expense_account_id = $6,
				accounts_payable_account_id = $7,
				accounts_receivable_account_id = $8,
				last_updated_at = $9,
				last_updated_by = $10
			WHERE tenant_id = $1;
		`,
			settings.TenantID,
			settings.CashAccountID,
			settings.SalesAccountID,
			settings.InventoryAccountID,
			settings.COGSAccountID,
			settings.OperationalExpenseAccountID,
			settings.AccountsPayableAccountID,
			settings.AccountsReceivableAccountID,
			settings.LastUpdatedAt,
			settings.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update settings for tenant %s: %w", settings.TenantID, err)
		}
		return nil
	})
}
