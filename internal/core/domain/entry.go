package domain

import "github.com/shopspring/decimal"

// JournalEntry is a single line of a journal transaction, affecting one
// account. Exactly one of Debit/Credit is nonzero; lines are immutable once
// written, corrections are new transactions.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> JournalTransaction (Not Null)
	AccountID     string          `json:"accountID"`     // FK -> Account (Not Null)
	AccountCode   string          `json:"accountCode"`   // Denormalized for audit
	Debit         decimal.Decimal `json:"debit"`         // >= 0
	Credit        decimal.Decimal `json:"credit"`        // >= 0
	Description   string          `json:"description"`   // Nullable
	AuditFields
}

// IsDebit reports whether the line is a debit line.
func (e JournalEntry) IsDebit() bool {
	return e.Debit.IsPositive()
}

// Delta is the signed balance effect of this line on its account,
// debit-positive per the ledger's balance convention.
func (e JournalEntry) Delta() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}
