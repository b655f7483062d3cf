package dto

import (
	"time"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordEventRequest is the single entry point payload business modules send
// after their own domain transaction has been durably recorded.
type RecordEventRequest struct {
	SourceModule        string            `json:"sourceModule" binding:"required"`
	SourceTransactionID string            `json:"sourceTransactionID" binding:"required"`
	EventKind           string            `json:"eventKind" binding:"required"`
	Amount              decimal.Decimal   `json:"amount" binding:"required"`
	Fee                 decimal.Decimal   `json:"fee"`
	Roles               map[string]string `json:"roles" binding:"required"` // slot -> account role
	Description         string            `json:"description"`
	BranchID            string            `json:"branchID"`
	PostingDate         *time.Time        `json:"postingDate"`
	Metadata            map[string]string `json:"metadata"`
}

// ToDomain converts the request into a BusinessEvent. A nil posting date is
// left zero for the service to default.
func (r RecordEventRequest) ToDomain() domain.BusinessEvent {
	roles := make(map[domain.RoleSlot]domain.AccountRole, len(r.Roles))
	for slot, role := range r.Roles {
		roles[domain.RoleSlot(slot)] = domain.AccountRole(role)
	}
	event := domain.BusinessEvent{
		SourceModule:        domain.SourceModule(r.SourceModule),
		SourceTransactionID: r.SourceTransactionID,
		Kind:                domain.EventKind(r.EventKind),
		Amount:              r.Amount,
		Fee:                 r.Fee,
		Roles:               roles,
		Description:         r.Description,
		BranchID:            r.BranchID,
		Metadata:            r.Metadata,
	}
	if r.PostingDate != nil {
		event.PostingDate = *r.PostingDate
	}
	return event
}

// PostingResult is the outcome of RecordEvent. AlreadyPosted marks retries
// that observed the first call's transaction instead of creating a new one.
type PostingResult struct {
	TransactionID string                   `json:"transactionID"`
	Status        domain.TransactionStatus `json:"status"`
	AlreadyPosted bool                     `json:"alreadyPosted"`
}
