package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a GL account in the chart of accounts.
// Code is the stable business key; it is unique and immutable once created.
// Balance is the running sum of (debit - credit) over all posted entries and
// is mutated exclusively by the posting repository inside its transaction.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique business key, e.g. "1001-KSI"
	Name            string          `json:"name"`            // Display name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (hierarchy)
	BranchID        string          `json:"branchID"`        // Empty for global accounts
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Accounts are deactivated, never deleted
	Balance         decimal.Decimal `json:"balance"`         // Running balance, debit-positive
	AuditFields                     // Embed CreatedAt, CreatedBy, etc.
}
