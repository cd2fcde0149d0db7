package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// RoundMoney normalizes a currency amount to the ledger's minor-unit precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(domain.MoneyPrecision)
}

// RoundQuantity normalizes a physical quantity to three decimal places.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(domain.QuantityPrecision)
}

// ValidateEntryItems enforces the journal entry invariants, in order:
// each item carries at most one positive side, the debit and credit sums
// are equal, and the entry moves a non-zero amount. The returned error
// names the violated rule and wraps apperrors.ErrValidation.
func ValidateEntryItems(items []domain.JournalItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: journal entry must have at least one item", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, item := range items {
		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			return fmt.Errorf("%w: debit and credit must be non-negative for account %s", apperrors.ErrValidation, item.AccountID)
		}
		if item.Debit.IsPositive() && item.Credit.IsPositive() {
			return fmt.Errorf("%w: item for account %s has both a debit and a credit side", apperrors.ErrValidation, item.AccountID)
		}
		debits = debits.Add(item.Debit)
		credits = credits.Add(item.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: sum of debits must equal sum of credits (debits %s, credits %s)",
			apperrors.ErrValidation, debits.String(), credits.String())
	}
	if debits.IsZero() {
		return fmt.Errorf("%w: journal entry must move a non-zero amount", apperrors.ErrValidation)
	}
	return nil
}

// SignedBalance converts a debit-positive balance to the natural reading
// for the account type: debit-positive for Asset/Expense, credit-positive
// for Liability/Equity/Revenue.
func SignedBalance(balance decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.Expense:
		return balance
	default:
		return balance.Neg()
	}
}
