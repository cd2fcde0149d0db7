package dto

import (
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// UpdateSettingsRequest remaps role accounts. Pointers distinguish
// "leave unchanged" from an explicit mapping.
type UpdateSettingsRequest struct {
	CashAccountID               *string `json:"cashAccountID"`
	SalesAccountID              *string `json:"salesAccountID"`
	InventoryAccountID          *string `json:"inventoryAccountID"`
	COGSAccountID               *string `json:"cogsAccountID"`
	OperationalExpenseAccountID *string `json:"operationalExpenseAccountID"`
	AccountsPayableAccountID    *string `json:"accountsPayableAccountID"`
	AccountsReceivableAccountID *string `json:"accountsReceivableAccountID"`
}

// SettingsResponse mirrors domain.FinancialSettings.
type SettingsResponse struct {
	CashAccountID               string `json:"cashAccountID"`
	SalesAccountID              string `json:"salesAccountID"`
	InventoryAccountID          string `json:"inventoryAccountID"`
	COGSAccountID               string `json:"cogsAccountID"`
	OperationalExpenseAccountID string `json:"operationalExpenseAccountID"`
	AccountsPayableAccountID    string `json:"accountsPayableAccountID"`
	AccountsReceivableAccountID string `json:"accountsReceivableAccountID"`
	IsInitialized               bool   `json:"isInitialized"`
}

// ToSettingsResponse converts domain.FinancialSettings to its DTO.
func ToSettingsResponse(s *domain.FinancialSettings) SettingsResponse {
	return SettingsResponse{
		CashAccountID:               s.CashAccountID,
		SalesAccountID:              s.SalesAccountID,
		InventoryAccountID:          s.InventoryAccountID,
		COGSAccountID:               s.COGSAccountID,
		OperationalExpenseAccountID: s.OperationalExpenseAccountID,
		AccountsPayableAccountID:    s.AccountsPayableAccountID,
		AccountsReceivableAccountID: s.AccountsReceivableAccountID,
		IsInitialized:               s.IsInitialized,
	}
}
