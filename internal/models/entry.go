package models

import "github.com/shopspring/decimal"

// JournalEntry is the database representation of a single entry line.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	AccountCode   string          `db:"account_code"` // Denormalized for audit
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	AuditFields
}
