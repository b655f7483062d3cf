package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualEntryLine is one hand-written line of a manual journal transaction.
// Exactly one of Debit/Credit must be positive.
type ManualEntryLine struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateManualTransactionRequest stages or posts a manual journal transaction.
// AutoPost=false leaves it PENDING for review.
type CreateManualTransactionRequest struct {
	PostingDate time.Time         `json:"postingDate" binding:"required"`
	Description string            `json:"description" binding:"required"`
	BranchID    string            `json:"branchID"`
	AutoPost    bool              `json:"autoPost"`
	Lines       []ManualEntryLine `json:"lines" binding:"required,min=2,dive"`
	Metadata    map[string]string `json:"metadata"`
}
