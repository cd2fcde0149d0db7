package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralLedgerRow is one posting line in an account's ledger view, with
// the running balance after the line.
type GeneralLedgerRow struct {
	Date            time.Time       `json:"date"`
	EntryID         string          `json:"entryID"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	TransactionType TransactionType `json:"transactionType"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
}

// GeneralLedger is the ledger of one account over a period.
type GeneralLedger struct {
	AccountID      string             `json:"accountID"`
	AccountCode    string             `json:"accountCode"`
	AccountName    string             `json:"accountName"`
	AccountType    AccountType        `json:"accountType"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Rows           []GeneralLedgerRow `json:"rows"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// AccountAmount pairs an account with a net amount for report breakdowns.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// ProfitAndLoss is the ledger-derived income statement for a period.
// MissingPostings counts business events the poster could not post for
// lack of configured accounts; a non-zero count flags the report as
// incomplete rather than letting it masquerade as authoritative.
type ProfitAndLoss struct {
	StartDate         time.Time       `json:"startDate"`
	EndDate           time.Time       `json:"endDate"`
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	OperatingExpenses decimal.Decimal `json:"operatingExpenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	ExpenseBreakdown  []AccountAmount `json:"expenseBreakdown"` // excludes the COGS account
	MissingPostings   int             `json:"missingPostings"`
}

// BalanceSheet is the ledger-derived statement of position as of a date.
// RetainedEarnings is cumulative net income through AsOf, derived on read
// and never stored; TotalEquity includes it.
type BalanceSheet struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}
