package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

// PgxReportingRepository answers aggregation queries over journal items.
// Every balance is SUM(debit - credit): debit-positive, with the sign
// interpretation left to the caller.
type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) AccountBalance(ctx context.Context, tenantID, accountID string, since *time.Time, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ji.debit - ji.credit), 0)
		FROM journal_items ji
		JOIN journal_entries je ON je.entry_id = ji.entry_id
		WHERE ji.tenant_id = $1 AND ji.account_id = $2 AND je.entry_date <= $3
	`
	args := []any{tenantID, accountID, asOf}
	if since != nil {
		query += ` AND je.entry_date >= $4`
		args = append(args, *since)
	}

	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

func (r *PgxReportingRepository) TypeBalance(ctx context.Context, tenantID string, accountType domain.AccountType, since *time.Time, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ji.debit - ji.credit), 0)
		FROM journal_items ji
		JOIN journal_entries je ON je.entry_id = ji.entry_id
		JOIN accounts a ON a.account_id = ji.account_id
		WHERE ji.tenant_id = $1 AND a.account_type = $2 AND je.entry_date <= $3
	`
	args := []any{tenantID, accountType, asOf}
	if since != nil {
		query += ` AND je.entry_date >= $4`
		args = append(args, *since)
	}

	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute %s balance: %w", accountType, err)
	}
	return balance, nil
}

func (r *PgxReportingRepository) BalancesByAccount(ctx context.Context, tenantID string, accountTypes []domain.AccountType, since *time.Time, asOf time.Time) (map[domain.AccountType][]domain.AccountAmount, error) {
	types := make([]string, len(accountTypes))
	for i, t := range accountTypes {
		types[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, COALESCE(SUM(ji.debit - ji.credit), 0) AS net
		FROM journal_items ji
		JOIN journal_entries je ON je.entry_id = ji.entry_id
		JOIN accounts a ON a.account_id = ji.account_id
		WHERE ji.tenant_id = $1 AND a.account_type = ANY($2) AND je.entry_date <= $3
	`
	args := []any{tenantID, types, asOf}
	if since != nil {
		query += ` AND je.entry_date >= $4`
		args = append(args, *since)
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances by account: %w", err)
	}
	defer rows.Close()

	result := make(map[domain.AccountType][]domain.AccountAmount, len(accountTypes))
	for rows.Next() {
		var amount domain.AccountAmount
		var accountType domain.AccountType
		if err := rows.Scan(&amount.AccountID, &amount.Code, &amount.Name, &accountType, &amount.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan account balance row: %w", err)
		}
		result[accountType] = append(result[accountType], amount)
	}
	return result, rows.Err()
}

func (r *PgxReportingRepository) LedgerRows(ctx context.Context, tenantID, accountID string, start, end time.Time) ([]domain.GeneralLedgerRow, error) {
	query := `
		SELECT je.entry_date, je.entry_id, je.description, je.reference_document, ji.debit, ji.credit
		FROM journal_items ji
		JOIN journal_entries je ON je.entry_id = ji.entry_id
		WHERE ji.tenant_id = $1 AND ji.account_id = $2 AND je.entry_date BETWEEN $3 AND $4
		ORDER BY je.entry_date, je.entry_id;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows for account %s: %w", accountID, err)
	}
	defer rows.Close()

	ledgerRows := []domain.GeneralLedgerRow{}
	for rows.Next() {
		var row domain.GeneralLedgerRow
		if err := rows.Scan(&row.Date, &row.EntryID, &row.Description, &row.Reference, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgerRows = append(ledgerRows, row)
	}
	return ledgerRows, rows.Err()
}

// MissingPostingCount anti-joins the event log against journal entry
// references. Usage reversals are stock-only and never carry an entry.
func (r *PgxReportingRepository) MissingPostingCount(ctx context.Context, tenantID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM event_log el
		WHERE el.tenant_id = $1
		  AND el.occurred_at::date BETWEEN $2 AND $3
		  AND el.event_type <> $4
		  AND NOT EXISTS (
			SELECT 1 FROM journal_entries je
			WHERE je.tenant_id = el.tenant_id AND je.reference_document = el.reference
		  );
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, tenantID, start, end, domain.EventUsageReversal).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count missing postings: %w", err)
	}
	return count, nil
}
