package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage boundary.
type AccountType string

// Account is the database representation of a GL account.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"` // Unique business key
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	BranchID        string          `db:"branch_id"`         // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields                     // Embed common audit fields
}
