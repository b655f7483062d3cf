package dto

import (
	"time"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse is the outward representation of a journal transaction.
type TransactionResponse struct {
	TransactionID         string                   `json:"transactionID"`
	PostingDate           time.Time                `json:"postingDate"`
	SourceModule          domain.SourceModule      `json:"sourceModule"`
	SourceTransactionID   string                   `json:"sourceTransactionID"`
	SourceTransactionType string                   `json:"sourceTransactionType"`
	Description           string                   `json:"description"`
	Status                domain.TransactionStatus `json:"status"`
	BranchID              string                   `json:"branchID,omitempty"`
	Amount                decimal.Decimal          `json:"amount"`
	OriginalTransactionID *string                  `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string                 `json:"reversingTransactionID,omitempty"`
	CreatedAt             time.Time                `json:"createdAt"`
	CreatedBy             string                   `json:"createdBy"`
	Entries               []EntryResponse          `json:"entries,omitempty"`
}

// EntryResponse is the outward representation of one entry line.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain transaction (entries included when
// loaded) to its response form.
func ToTransactionResponse(d *domain.JournalTransaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:          d.TransactionID,
		PostingDate:            d.PostingDate,
		SourceModule:           d.SourceModule,
		SourceTransactionID:    d.SourceTransactionID,
		SourceTransactionType:  d.SourceTransactionType,
		Description:            d.Description,
		Status:                 d.Status,
		BranchID:               d.BranchID,
		Amount:                 d.Amount,
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		CreatedAt:              d.CreatedAt,
		CreatedBy:              d.CreatedBy,
	}
	if len(d.Entries) > 0 {
		resp.Entries = ToEntryResponses(d.Entries)
	}
	return resp
}

// ToEntryResponses converts domain entries to their response form.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			EntryID:       e.EntryID,
			TransactionID: e.TransactionID,
			AccountID:     e.AccountID,
			AccountCode:   e.AccountCode,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Description:   e.Description,
			CreatedAt:     e.CreatedAt,
		}
	}
	return out
}

// ListTransactionsParams holds cursor pagination parameters for listing headers.
type ListTransactionsParams struct {
	Limit            int
	NextToken        *string
	IncludeReversals bool
}

// ListTransactionsResponse is one page of transaction headers.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListEntriesParams holds cursor pagination parameters for listing entries.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
}

// ListEntriesResponse is one page of entry lines against an account.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
