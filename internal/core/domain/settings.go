package domain

// AccountRole names the semantic role a default account plays in event
// postings and reports.
type AccountRole string

const (
	RoleCash               AccountRole = "cash"
	RoleSales              AccountRole = "sales"
	RoleInventory          AccountRole = "inventory"
	RoleCOGS               AccountRole = "cogs"
	RoleOperationalExpense AccountRole = "operational_expense"
	RoleAccountsPayable    AccountRole = "accounts_payable"
	RoleAccountsReceivable AccountRole = "accounts_receivable"
)

// FinancialSettings maps account roles to concrete accounts for one tenant.
// Once IsInitialized is set the mapping is locked: reports always read
// current settings, so changing defaults after go-live would silently
// reinterpret history.
type FinancialSettings struct {
	TenantID                    string `json:"tenantID"`
	CashAccountID               string `json:"cashAccountID"`
	SalesAccountID              string `json:"salesAccountID"`
	InventoryAccountID          string `json:"inventoryAccountID"`
	COGSAccountID               string `json:"cogsAccountID"`
	OperationalExpenseAccountID string `json:"operationalExpenseAccountID"`
	AccountsPayableAccountID    string `json:"accountsPayableAccountID"`
	AccountsReceivableAccountID string `json:"accountsReceivableAccountID"`
	IsInitialized               bool   `json:"isInitialized"`
	AuditFields
}

// AccountIDForRole returns the mapped account ID for a role, empty when unmapped.
func (s FinancialSettings) AccountIDForRole(role AccountRole) string {
	switch role {
	case RoleCash:
		return s.CashAccountID
	case RoleSales:
		return s.SalesAccountID
	case RoleInventory:
		return s.InventoryAccountID
	case RoleCOGS:
		return s.COGSAccountID
	case RoleOperationalExpense:
		return s.OperationalExpenseAccountID
	case RoleAccountsPayable:
		return s.AccountsPayableAccountID
	case RoleAccountsReceivable:
		return s.AccountsReceivableAccountID
	}
	return ""
}

// DefaultAccountSeed describes one default chart-of-accounts entry.
type DefaultAccountSeed struct {
	Role AccountRole
	Name string
	Code string
	Type AccountType
}

// DefaultAccountSeeds is the chart seeded for a tenant on first settings
// access. Matching is by name first, then code.
func DefaultAccountSeeds() []DefaultAccountSeed {
	return []DefaultAccountSeed{
		{Role: RoleCash, Name: "Cash", Code: "1000", Type: Asset},
		{Role: RoleAccountsReceivable, Name: "Accounts Receivable", Code: "1100", Type: Asset},
		{Role: RoleInventory, Name: "Inventory", Code: "1200", Type: Asset},
		{Role: RoleAccountsPayable, Name: "Accounts Payable", Code: "2000", Type: Liability},
		{Role: RoleSales, Name: "Sales", Code: "4000", Type: Revenue},
		{Role: RoleCOGS, Name: "Cost of Goods Sold", Code: "5000", Type: Expense},
		{Role: RoleOperationalExpense, Name: "Operational Expense", Code: "6000", Type: Expense},
	}
}

// ExpectedRoleTypes gives the account type each role mapping must carry.
func ExpectedRoleTypes() map[AccountRole]AccountType {
	return map[AccountRole]AccountType{
		RoleCash:               Asset,
		RoleSales:              Revenue,
		RoleInventory:          Asset,
		RoleCOGS:               Expense,
		RoleOperationalExpense: Expense,
		RoleAccountsPayable:    Liability,
		RoleAccountsReceivable: Asset,
	}
}
