package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a journal transaction.
type TransactionStatus string

const (
	Pending  TransactionStatus = "PENDING"
	Posted   TransactionStatus = "POSTED"
	Reversed TransactionStatus = "REVERSED"
)

// SourceModule identifies the business module that originated a journal transaction.
type SourceModule string

const (
	SourceMomo       SourceModule = "momo"
	SourceEZwich     SourceModule = "e-zwich"
	SourceExpense    SourceModule = "expense"
	SourceCommission SourceModule = "commission"
	SourceManual     SourceModule = "manual"
)

// JournalTransaction is the header of a balanced double-entry posting.
// (SourceModule, SourceTransactionID) is unique among non-reversed
// transactions: at most one live journal transaction per business event.
type JournalTransaction struct {
	TransactionID         string            `json:"transactionID"`         // Primary Key (UUID)
	PostingDate           time.Time         `json:"postingDate"`           // Date the event occurred
	SourceModule          SourceModule      `json:"sourceModule"`          // Originating module
	SourceTransactionID   string            `json:"sourceTransactionID"`   // Originating business event id (idempotency key)
	SourceTransactionType string            `json:"sourceTransactionType"` // Operation within the module, e.g. "cash-in"
	Description           string            `json:"description"`           // Nullable free text
	Status                TransactionStatus `json:"status"`                // PENDING, POSTED or REVERSED
	BranchID              string            `json:"branchID"`              // Empty when not branch-scoped
	Amount                decimal.Decimal   `json:"amount"`                // Total debits (== total credits)
	Metadata              map[string]string `json:"metadata,omitempty"`    // Optional structured context
	OriginalTransactionID *string           `json:"originalTransactionID,omitempty"`  // Set on reversal transactions
	ReversingTransactionID *string          `json:"reversingTransactionID,omitempty"` // Set on reversed originals
	AuditFields
	Entries []JournalEntry `json:"entries,omitempty"` // Often loaded separately
}
