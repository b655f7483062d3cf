package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors domain.TransactionStatus at the storage boundary.
type TransactionStatus string

// JournalTransaction is the database representation of a posting header.
type JournalTransaction struct {
	TransactionID          string            `db:"transaction_id"`
	PostingDate            time.Time         `db:"posting_date"`
	SourceModule           string            `db:"source_module"`
	SourceTransactionID    string            `db:"source_transaction_id"`
	SourceTransactionType  string            `db:"source_transaction_type"`
	Description            string            `db:"description"`
	Status                 TransactionStatus `db:"status"`
	BranchID               string            `db:"branch_id"` // Nullable
	Amount                 decimal.Decimal   `db:"amount"`
	Metadata               map[string]string `db:"metadata"` // JSONB
	OriginalTransactionID  *string           `db:"original_transaction_id"`
	ReversingTransactionID *string           `db:"reversing_transaction_id"`
	AuditFields
}
