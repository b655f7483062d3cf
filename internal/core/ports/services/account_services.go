package services

import (
	"context"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/branchgl/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountResolverSvc maps semantic account roles to concrete accounts,
// creating them lazily on first use.
type AccountResolverSvc interface {
	// Resolve returns the active account for a role (and branch scope when the
	// role is branch-scoped), creating it if absent. Unknown roles fail with
	// apperrors.ErrConfiguration.
	Resolve(ctx context.Context, role domain.AccountRole, branchID string, actorID string) (*domain.Account, error)
}

// AccountReaderSvc defines read operations over the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByCode retrieves an account by its business code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountBalance returns the running balance of an account.
	GetAccountBalance(ctx context.Context, code string) (decimal.Decimal, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAccountEntries retrieves posted entry lines against an account.
	ListAccountEntries(ctx context.Context, code string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// AccountWriterSvc defines the one mutating chart operation exposed outward
type AccountWriterSvc interface {
	// DeactivateAccount retires an account; it is excluded from resolution
	// afterwards but its history remains.
	DeactivateAccount(ctx context.Context, code string, actorID string) error
}

// AccountSvcFacade combines the account service interfaces
type AccountSvcFacade interface {
	AccountResolverSvc
	AccountReaderSvc
	AccountWriterSvc
}
