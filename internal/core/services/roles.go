package services

import "github.com/branchgl/backend/internal/core/domain"

// roleDefinition fixes the code/name/type an account role resolves to.
// Branch-scoped roles get one account per branch, suffixed with the branch id.
type roleDefinition struct {
	BaseCode     string
	Name         string
	AccountType  domain.AccountType
	BranchScoped bool
}

// roleTable is the complete role -> account mapping. Adding a role here is the
// only change needed to introduce a new semantic account; resolution of a role
// absent from this table is a configuration defect, not a runtime condition.
var roleTable = map[domain.AccountRole]roleDefinition{
	domain.RoleCashInTill:        {BaseCode: "1001", Name: "Cash In Till", AccountType: domain.Asset, BranchScoped: true},
	domain.RoleMomoFloat:         {BaseCode: "1201", Name: "MoMo Float", AccountType: domain.Asset, BranchScoped: true},
	domain.RoleEZwichFloat:       {BaseCode: "1202", Name: "E-Zwich Settlement Float", AccountType: domain.Asset, BranchScoped: true},
	domain.RoleCardInventory:     {BaseCode: "1301", Name: "E-Zwich Card Inventory", AccountType: domain.Asset, BranchScoped: true},
	domain.RoleAccountsPayable:   {BaseCode: "2001", Name: "Accounts Payable", AccountType: domain.Liability, BranchScoped: false},
	domain.RoleFeeRevenue:        {BaseCode: "4001", Name: "Fee Revenue", AccountType: domain.Revenue, BranchScoped: false},
	domain.RoleCommissionRevenue: {BaseCode: "4002", Name: "Commission Revenue", AccountType: domain.Revenue, BranchScoped: false},
	domain.RoleOperatingExpense:  {BaseCode: "5001", Name: "Operating Expenses", AccountType: domain.Expense, BranchScoped: false},
}

// accountCodeForRole builds the deterministic account code for a role and
// branch scope. Global roles ignore the branch.
func accountCodeForRole(def roleDefinition, branchID string) string {
	if def.BranchScoped && branchID != "" {
		return def.BaseCode + "-" + branchID
	}
	return def.BaseCode
}

// accountNameForRole builds the display name matching accountCodeForRole.
func accountNameForRole(def roleDefinition, branchID string) string {
	if def.BranchScoped && branchID != "" {
		return def.Name + " (" + branchID + ")"
	}
	return def.Name
}
