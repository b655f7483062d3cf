package dto

import (
	"time"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse is the outward representation of a GL account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	BranchID    string             `json:"branchID,omitempty"`
	Description string             `json:"description,omitempty"`
	IsActive    bool               `json:"isActive"`
	Balance     decimal.Decimal    `json:"balance"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its response form.
func ToAccountResponse(d *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: d.AccountType,
		BranchID:    d.BranchID,
		Description: d.Description,
		IsActive:    d.IsActive,
		Balance:     d.Balance,
		CreatedAt:   d.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
