package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// ReportPeriodParams bounds a period report.
type ReportPeriodParams struct {
	StartDate time.Time `form:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" binding:"required" time_format:"2006-01-02"`
}

// AsOfParams bounds a point-in-time report.
type AsOfParams struct {
	AsOf time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
}

// GeneralLedgerParams selects the account statement window.
type GeneralLedgerParams struct {
	AccountID string    `form:"accountID" binding:"required"`
	StartDate time.Time `form:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" binding:"required" time_format:"2006-01-02"`
}

// GeneralLedgerRowResponse is one statement line with its running balance.
type GeneralLedgerRowResponse struct {
	Date            string          `json:"date"`
	EntryID         string          `json:"entryID"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	TransactionType string          `json:"transactionType"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
}

// GeneralLedgerResponse mirrors domain.GeneralLedger.
type GeneralLedgerResponse struct {
	AccountID      string                     `json:"accountID"`
	AccountCode    string                     `json:"accountCode"`
	AccountName    string                     `json:"accountName"`
	AccountType    domain.AccountType         `json:"accountType"`
	StartDate      string                     `json:"startDate"`
	EndDate        string                     `json:"endDate"`
	OpeningBalance decimal.Decimal            `json:"openingBalance"`
	Rows           []GeneralLedgerRowResponse `json:"rows"`
	ClosingBalance decimal.Decimal            `json:"closingBalance"`
}

// ToGeneralLedgerResponse converts a domain.GeneralLedger to its DTO.
func ToGeneralLedgerResponse(gl *domain.GeneralLedger) GeneralLedgerResponse {
	rows := make([]GeneralLedgerRowResponse, len(gl.Rows))
	for i, r := range gl.Rows {
		rows[i] = GeneralLedgerRowResponse{
			Date:            domain.DateKey(r.Date),
			EntryID:         r.EntryID,
			Description:     r.Description,
			Reference:       r.Reference,
			TransactionType: string(r.TransactionType),
			Debit:           r.Debit,
			Credit:          r.Credit,
			Balance:         r.Balance,
		}
	}
	return GeneralLedgerResponse{
		AccountID:      gl.AccountID,
		AccountCode:    gl.AccountCode,
		AccountName:    gl.AccountName,
		AccountType:    gl.AccountType,
		StartDate:      domain.DateKey(gl.StartDate),
		EndDate:        domain.DateKey(gl.EndDate),
		OpeningBalance: gl.OpeningBalance,
		Rows:           rows,
		ClosingBalance: gl.ClosingBalance,
	}
}

// AccountAmountResponse is one named line of a report section.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

func toAccountAmounts(in []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(in))
	for i, a := range in {
		out[i] = AccountAmountResponse{AccountID: a.AccountID, Code: a.Code, Name: a.Name, NetAmount: a.NetAmount}
	}
	return out
}

// ProfitAndLossResponse mirrors domain.ProfitAndLoss.
type ProfitAndLossResponse struct {
	StartDate         string                  `json:"startDate"`
	EndDate           string                  `json:"endDate"`
	Revenue           decimal.Decimal         `json:"revenue"`
	COGS              decimal.Decimal         `json:"cogs"`
	GrossProfit       decimal.Decimal         `json:"grossProfit"`
	OperatingExpenses decimal.Decimal         `json:"operatingExpenses"`
	NetIncome         decimal.Decimal         `json:"netIncome"`
	ExpenseBreakdown  []AccountAmountResponse `json:"expenseBreakdown"`
	MissingPostings   int                     `json:"missingPostings"`
}

// ToProfitAndLossResponse converts a domain.ProfitAndLoss to its DTO.
func ToProfitAndLossResponse(p *domain.ProfitAndLoss) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		StartDate:         domain.DateKey(p.StartDate),
		EndDate:           domain.DateKey(p.EndDate),
		Revenue:           p.Revenue,
		COGS:              p.COGS,
		GrossProfit:       p.GrossProfit,
		OperatingExpenses: p.OperatingExpenses,
		NetIncome:         p.NetIncome,
		ExpenseBreakdown:  toAccountAmounts(p.ExpenseBreakdown),
		MissingPostings:   p.MissingPostings,
	}
}

// BalanceSheetResponse mirrors domain.BalanceSheet.
type BalanceSheetResponse struct {
	AsOf             string                  `json:"asOf"`
	Assets           []AccountAmountResponse `json:"assets"`
	Liabilities      []AccountAmountResponse `json:"liabilities"`
	Equity           []AccountAmountResponse `json:"equity"`
	RetainedEarnings decimal.Decimal         `json:"retainedEarnings"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal         `json:"totalEquity"`
}

// ToBalanceSheetResponse converts a domain.BalanceSheet to its DTO.
func ToBalanceSheetResponse(b *domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             domain.DateKey(b.AsOf),
		Assets:           toAccountAmounts(b.Assets),
		Liabilities:      toAccountAmounts(b.Liabilities),
		Equity:           toAccountAmounts(b.Equity),
		RetainedEarnings: b.RetainedEarnings,
		TotalAssets:      b.TotalAssets,
		TotalLiabilities: b.TotalLiabilities,
		TotalEquity:      b.TotalEquity,
	}
}

// RebuildSummaryResponse mirrors domain.RebuildSummary.
type RebuildSummaryResponse struct {
	EntriesDeleted int `json:"entriesDeleted"`
	EventsReplayed int `json:"eventsReplayed"`
	EntriesPosted  int `json:"entriesPosted"`
	Skipped        int `json:"skipped"`
}

// ToRebuildSummaryResponse converts a domain.RebuildSummary to its DTO.
func ToRebuildSummaryResponse(s *domain.RebuildSummary) RebuildSummaryResponse {
	return RebuildSummaryResponse{
		EntriesDeleted: s.EntriesDeleted,
		EventsReplayed: s.EventsReplayed,
		EntriesPosted:  s.EntriesPosted,
		Skipped:        s.Skipped,
	}
}
